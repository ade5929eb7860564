package models

type Restaurant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Cover    string `json:"cover"`
	MenuFile string `json:"menuFile"`
}
