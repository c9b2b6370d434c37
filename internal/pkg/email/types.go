package email

// Email represents a single outgoing message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData is the base payload for email templates.
type TemplateData struct {
	UserName    string
	Subject     string
	Message     string
	ActionURL   string
	ActionText  string
	CompanyName string
}

// LowStockData fills the low-stock alert template.
type LowStockData struct {
	TemplateData
	ProductName string
	SKU         string
	Quantity    int
	Threshold   int
	ListingURL  string
}

// Config for the SMTP transport.
type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Sender delivers email messages.
type Sender interface {
	Send(email *Email) error
	SendTemplate(to []string, subject, templateName string, data interface{}) error
	SendNotification(to, subject, message string) error
	SendLowStockAlert(to, adminName string, data LowStockData) error
}
