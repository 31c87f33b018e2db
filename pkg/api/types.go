package api

// Role enumerates the account roles known to the storefront.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// User is the profile record as served by the user endpoints. It is replaced
// wholesale on every update; nothing merges into it client-side.
type User struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ContactNumber   string `json:"contactNumber"`
	Role            Role   `json:"role"`
	IsActive        bool   `json:"isActive"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	CreatedAt       string `json:"createdAt"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	DateOfBirth     string `json:"dateOfBirth,omitempty"`
}

// AuthResponse is the sign-in response body.
type AuthResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Credentials carries a sign-in request. Both fields are validated before any
// network call is made.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration carries a sign-up request.
type Registration struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ContactNumber   string `json:"contactNumber" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
}

// ProfileUpdate carries a partial profile update. Zero-valued fields are
// omitted from the request body; the server returns the full updated record.
type ProfileUpdate struct {
	Name          string `json:"name,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
}

// Medicine is a catalog entry. Cart line items hold a snapshot of this record
// as it was at add time; a later price change does not rewrite carts.
type Medicine struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description,omitempty"`
	Category             string  `json:"category"`
	Manufacturer         string  `json:"manufacturer"`
	Price                float64 `json:"price"`
	StockQuantity        int     `json:"stockQuantity"`
	ExpiryDate           string  `json:"expiryDate,omitempty"`
	RequiresPrescription bool    `json:"requiresPrescription"`
	IsActive             bool    `json:"isActive"`
	CreatedAt            string  `json:"createdAt"`
	UpdatedAt            string  `json:"updatedAt"`
	ImageURL             string  `json:"imageUrl,omitempty"`
	Dosage               string  `json:"dosage,omitempty"`
	SideEffects          string  `json:"sideEffects,omitempty"`
	UsageInstructions    string  `json:"usageInstructions,omitempty"`
}

// OrderStatus enumerates the order life-cycle as reported by the server.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Address is a shipping address.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is a priced line item inside a placed order.
type OrderItem struct {
	ID       int64    `json:"id"`
	Medicine Medicine `json:"medicine"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
}

// Order is a placed order as served by the order endpoints.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"userId"`
	OrderItems      []OrderItem `json:"orderItems"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	PrescriptionURL string      `json:"prescriptionUrl,omitempty"`
	OrderDate       string      `json:"orderDate"`
	DeliveryDate    string      `json:"deliveryDate,omitempty"`
	PaymentMethod   string      `json:"paymentMethod"`
	PaymentStatus   string      `json:"paymentStatus"`
}

// NewOrderItem references a catalog entry when placing an order.
type NewOrderItem struct {
	MedicineID int64 `json:"medicineId" validate:"required"`
	Quantity   int   `json:"quantity" validate:"required,gt=0"`
}

// NewOrder is the request body for placing an order.
type NewOrder struct {
	OrderItems      []NewOrderItem `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress Address        `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod" validate:"required"`
	PrescriptionURL string         `json:"prescriptionUrl,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// Message is a generic acknowledgement body.
type Message struct {
	Message string `json:"message"`
}
