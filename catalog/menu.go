// Package catalog holds the fixed breakfast menu and delivery schedule.
package catalog

import (
	"fmt"

	"github.com/JasonLinn/bnb-breakfast/models"
)

const imageBase = "https://images.unsplash.com/"

var breadVariants = []models.Variant{
	{ID: "hamburger", Label: "美式漢堡"},
	{ID: "toast", Label: "鮮奶吐司"},
}

var menu = []models.MenuEntry{
	{ID: 1, Name: "早安拼盤", Description: "鮮奶吐司+起士火腿+炒蛋+生菜沙拉+地瓜", Image: imageBase + "photo-1533089860892-a7c6f0a88666"},
	{ID: 2, Name: "豬排起司蛋", Variants: breadVariants, Image: imageBase + "photo-1568901346375-23c9450c58cd"},
	{ID: 3, Name: "夏威夷嫩雞", Variants: breadVariants, Image: imageBase + "photo-1586190848861-99aa4a171e90"},
	{ID: 4, Name: "火腿歐姆蛋", Variants: breadVariants, Image: imageBase + "photo-1550547660-d9450f859349"},
	{ID: 5, Name: "洋蔥燒肉蛋餅", Image: imageBase + "photo-1506084868230-bb9d95c24759"},
	{ID: 6, Name: "蔬活蛋素拼盤(素食)", Description: "雜蛋沙拉四層總匯三明治+生菜沙拉+地瓜", Image: imageBase + "photo-1540420773420-3366772f4999"},
	{ID: 7, Name: "兒童餐", Description: "抹醬吐司:花生/阿華田/草莓/奶酥/奶油+炒蛋+玉米+薯餅+鮮奶茶", Image: imageBase + "photo-1590301157890-4810ed352733"},
	{ID: 8, Name: "豬排蛋鐵板麵(黑胡椒)", Image: imageBase + "photo-1555126634-323283e090fa"},
	{ID: 9, Name: "蘑菇", Image: imageBase + "photo-1518779578993-ec3579fee39f"},
}

var beverages = []models.BeverageEntry{
	{ID: 1, Name: "錫蘭紅茶", NoIce: true, Image: imageBase + "photo-1576092768241-dec231879fc3"},
	{ID: 2, Name: "錫蘭奶茶", NoIce: true, Image: imageBase + "photo-1578662996442-48f60103fc96"},
	{ID: 3, Name: "非基改豆乳", NoIce: true, Image: imageBase + "photo-1544145945-f90425340c7e"},
}

// Menu returns a copy of the food entries in display order
func Menu() []models.MenuEntry {
	out := make([]models.MenuEntry, len(menu))
	copy(out, menu)
	return out
}

// Beverages returns a copy of the drink entries in display order
func Beverages() []models.BeverageEntry {
	out := make([]models.BeverageEntry, len(beverages))
	copy(out, beverages)
	return out
}

// FindMenuEntry looks up a food entry by id
func FindMenuEntry(id int) (models.MenuEntry, error) {
	for _, m := range menu {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MenuEntry{}, fmt.Errorf("menu entry %d not found", id)
}

// FindBeverage looks up a drink by id
func FindBeverage(id int) (models.BeverageEntry, error) {
	for _, b := range beverages {
		if b.ID == id {
			return b, nil
		}
	}
	return models.BeverageEntry{}, fmt.Errorf("beverage %d not found", id)
}
