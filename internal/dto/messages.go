package dto

// Client-facing response messages. The frontend matches on these strings, so
// they are kept verbatim.
const (
	MsgSuccessNewRegister    = "Welcome to E-Shop, You should verify your email. Please check your Inbox we sent an activation email."
	MsgUserExistsNotActive   = "Oops, User with this email already exists but is not active. You should verify your email. Please check your Inbox we sent an activation email."
	MsgUserExistsActive      = "Oops, User with this email already exists and is active too. Please sign in to your account !"
	MsgErrorSendingEmail     = "Oops, there is a problem on sending email!"
	MsgUnexpectedError       = "Unexpected error occurred."
	MsgNotAuthorized         = "Oops, Not authorized!"
	MsgInvalidCredentials    = "No active account found with the given credentials"
	MsgOrderNotFound         = "Oops, Order not found!"
	MsgNoOrders              = "Oops, No orders found for you!"
	MsgNoOrderItems          = "No order items provided!. Please add items to your order."
	MsgPaymentMethodRequired = "Payment method is required."
	MsgPricesRequired        = "Tax price, shipping price and total price are required."
)

// Detail is the single-field payload used for status and error responses.
type Detail struct {
	Detail string `json:"detail"`
}
