package models

// Admission представляет запись справочника университетских наборов.
type Admission struct {
	ID         int64  `json:"id"`
	University string `json:"university"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Program    string `json:"program"`
	Website    string `json:"website"`
}
