package models

const StockOrderRequested = "solicitado"

// OrderData maps supplierId -> itemId -> quantity.
type OrderData map[string]map[string]int

// StockOrderRequest is one purchase request spanning several suppliers.
type StockOrderRequest struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	OrderData OrderData `bson:"orderData" json:"orderData"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt Instant   `bson:"createdAt" json:"createdAt"`
}

type Supplier struct {
	ID   string `bson:"_id,omitempty" json:"id"`
	Name string `bson:"name" json:"name"`
}

type StockItem struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	Name       string `bson:"name" json:"name"`
	SupplierID string `bson:"supplierId" json:"supplierId"`
	Posicao    int    `bson:"posicao" json:"posicao"`
}

// StockFormData feeds the stock order form.
type StockFormData struct {
	Suppliers []Supplier  `json:"suppliers"`
	Items     []StockItem `json:"items"`
}
