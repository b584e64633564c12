package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/JasonLinn/bnb-breakfast/controllers"
	"github.com/JasonLinn/bnb-breakfast/events"
	"github.com/JasonLinn/bnb-breakfast/utils"
)

type okRelay struct{}

func (okRelay) Send(context.Context, utils.Message) (string, error) { return "m-1", nil }
func (okRelay) Verify(context.Context) error                       { return nil }

func TestRegisterRoutes(t *testing.T) {
	es := utils.NewEmailServiceWithRelay(okRelay{}, utils.Config{MailTo: "staff@example.com"}, nil)
	router := mux.NewRouter()
	RegisterRoutes(router, controllers.NewMenuController(), controllers.NewOrderController(es, events.NopPublisher{}, nil))

	tests := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{method: http.MethodGet, path: "/api/menu", code: http.StatusOK},
		{method: http.MethodGet, path: "/api/menu/1", code: http.StatusOK},
		{method: http.MethodGet, path: "/api/send-email", code: http.StatusOK},
		{method: http.MethodPost, path: "/api/send-email", body: `{"deliveryTime":"8:30","items":[{"name":"a","quantity":1}]}`, code: http.StatusOK},
		{method: http.MethodDelete, path: "/api/send-email", code: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/api/orders", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
