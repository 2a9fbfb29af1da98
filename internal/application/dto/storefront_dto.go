package dto

// StorefrontPage paginación por número de página de la tienda.
type StorefrontPage struct {
	Page     int `json:"page"`
	PerPage  int `json:"per_page"`
	Total    int `json:"total"`
	LastPage int `json:"last_page"`
}

// StorefrontProductsResponse vitrina paginada con categorías para el menú.
type StorefrontProductsResponse struct {
	Items      []ProductResponse  `json:"items"`
	Categories []CategoryResponse `json:"categories"`
	Page       StorefrontPage     `json:"page"`
}

// CartResponse datos del carrito: productos con tramos, categorías y configuración.
type CartResponse struct {
	Products   []ProductResponse  `json:"products"`
	Categories []CategoryResponse `json:"categories"`
	Settings   map[string]*string `json:"settings"`
}
