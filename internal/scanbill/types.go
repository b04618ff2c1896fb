package scanbill

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	StoreID  string `json:"storeId,omitempty"`
}

type Store struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type Product struct {
	ID        string  `json:"id"`
	Barcode   string  `json:"barcode"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	Price     float64 `json:"price"`
	BasePrice float64 `json:"basePrice,omitempty"`
	TaxRate   float64 `json:"taxRate,omitempty"`
	CostPrice float64 `json:"costPrice,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	StoreID   string  `json:"storeId,omitempty"`
}

const (
	UnitAvailable = "AVAILABLE"
	UnitSold      = "SOLD"
)

type InventoryUnit struct {
	ID           string `json:"id"`
	Barcode      string `json:"barcode"`
	SerialNumber string `json:"serialNumber"`
	Status       string `json:"status"`
	StoreID      string `json:"storeId,omitempty"`
}

type CartItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	SerialNumber string  `json:"serialNumber"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

type Cart struct {
	ID          string     `json:"id,omitempty"`
	UserID      string     `json:"userId"`
	StoreID     string     `json:"storeId,omitempty"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

type Order struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId,omitempty"`
	Items          []CartItem `json:"items"`
	TotalAmount    float64    `json:"totalAmount"`
	Subtotal       float64    `json:"subtotal,omitempty"`
	TaxAmount      float64    `json:"taxAmount,omitempty"`
	DiscountAmount float64    `json:"discountAmount,omitempty"`
	Status         string     `json:"status,omitempty"`
	Timestamp      string     `json:"timestamp"`
	CustomerName   string     `json:"customerName"`
	CustomerMobile string     `json:"customerMobile"`
	StoreID        string     `json:"storeId,omitempty"`
	PaymentID      string     `json:"paymentId,omitempty"`
	PaymentMethod  string     `json:"paymentMethod,omitempty"`
	PaymentStatus  string     `json:"paymentStatus,omitempty"`
}

type Receipt struct {
	OrderID        string     `json:"orderId"`
	CustomerName   string     `json:"customerName"`
	CustomerMobile string     `json:"customerMobile"`
	Items          []CartItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	TaxAmount      float64    `json:"taxAmount"`
	DiscountAmount float64    `json:"discountAmount"`
	TotalAmount    float64    `json:"totalAmount"`
	PaymentMethod  string     `json:"paymentMethod,omitempty"`
	PaymentStatus  string     `json:"paymentStatus,omitempty"`
	PaymentID      string     `json:"paymentId,omitempty"`
	Status         string     `json:"status,omitempty"`
	Timestamp      string     `json:"timestamp"`
}

type Stats struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalOrders  int     `json:"totalOrders"`
}

type StoreRegistration struct {
	StoreName     string `json:"storeName"`
	Location      string `json:"location"`
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword"`
}

type NewProduct struct {
	Barcode   string  `json:"barcode"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category,omitempty"`
	BasePrice float64 `json:"basePrice,omitempty"`
	TaxRate   float64 `json:"taxRate,omitempty"`
	CostPrice float64 `json:"costPrice,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	StoreID   string  `json:"storeId"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
