package models

type Supplier struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Company string `json:"company"`
}
