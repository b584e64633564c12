package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/JasonLinn/bnb-breakfast/catalog"
	"github.com/JasonLinn/bnb-breakfast/models"
)

// MenuController serves the fixed catalog
type MenuController struct{}

// NewMenuController creates a new MenuController
func NewMenuController() *MenuController {
	return &MenuController{}
}

type menuResponse struct {
	Menu      []models.MenuEntry     `json:"menu"`
	Beverages []models.BeverageEntry `json:"beverages"`
	TimeSlots []string               `json:"timeSlots"`
}

// GetMenu returns all food entries, beverages and delivery slots
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(menuResponse{
		Menu:      catalog.Menu(),
		Beverages: catalog.Beverages(),
		TimeSlots: catalog.TimeSlots(),
	})
}

// GetMenuEntryByID returns a single food entry
func (mc *MenuController) GetMenuEntryByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid menu entry ID", http.StatusBadRequest)
		return
	}
	entry, err := catalog.FindMenuEntry(id)
	if err != nil {
		http.Error(w, "Menu entry not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
