package chat

import "strings"

// Rule pairs a set of trigger keywords with a canned response. Topic names
// the rule for metrics.
type Rule struct {
	Topic    string
	Keywords []string
	Response string
}

// Matcher resolves a free-text question to a canned response by testing an
// ordered rule list. The first rule with any keyword contained in the
// lower-cased query wins, so rule order is load-bearing.
type Matcher struct {
	rules    []Rule
	fallback string
}

// FallbackTopic is the topic reported when no rule matches.
const FallbackTopic = "fallback"

const Greeting = "Hi! I'm your ShopHub assistant. How can I help you today?"

const fallbackResponse = "I'm here to help! You can ask me about:\n" +
	"- Products and categories\n" +
	"- Orders and tracking\n" +
	"- Payment methods\n" +
	"- Shipping and delivery\n" +
	"- Returns and refunds\n" +
	"- Account help\n\nWhat would you like to know?"

// NewMatcher builds the default ShopHub support matcher.
func NewMatcher() *Matcher {
	return &Matcher{
		fallback: fallbackResponse,
		rules: []Rule{
			{
				Topic:    "greeting",
				Keywords: []string{"hello", "hi", "hey"},
				Response: "Hello! Welcome to ShopHub. How can I assist you today?",
			},
			{
				Topic:    "products",
				Keywords: []string{"product", "item", "find"},
				Response: "You can browse our products by category: Electronics, Clothing, Home, Accessories, and Health. Use the search bar to find specific items!",
			},
			{
				Topic:    "orders",
				Keywords: []string{"order", "track"},
				Response: "To track your orders, please login and visit the Orders page from the navigation menu. You can see all your order history and current status there.",
			},
			{
				Topic:    "returns",
				Keywords: []string{"return", "refund", "exchange"},
				Response: "We offer easy returns within 30 days of purchase. Please contact our support team at support@shophub.com with your order number for assistance.",
			},
			{
				Topic:    "payment",
				Keywords: []string{"payment", "pay", "cod", "prepaid"},
				Response: "We accept two payment methods:\n- Cash on Delivery (COD) - Pay when you receive\n- Prepaid - Card, UPI, or Net Banking\nYou can choose your preferred method at checkout.",
			},
			{
				Topic:    "shipping",
				Keywords: []string{"shipping", "delivery", "ship"},
				Response: "Standard delivery takes 3-5 business days. FREE shipping on orders over $100! Express delivery available for select items.",
			},
			{
				Topic:    "account",
				Keywords: []string{"account", "login", "signup", "register"},
				Response: "You can create an account or login by clicking the \"Login / Sign Up\" button. This allows you to track orders and save your preferences.",
			},
			{
				Topic:    "cart",
				Keywords: []string{"cart", "checkout"},
				Response: "Click the cart icon in the navigation to view your items. At checkout, you'll need to provide a shipping address and choose your payment method.",
			},
			{
				Topic:    "pricing",
				Keywords: []string{"price", "cost", "how much"},
				Response: "Our products range from budget-friendly to premium options. You can filter by category to find items in your price range. All prices are displayed on product cards.",
			},
			{
				Topic:    "support",
				Keywords: []string{"contact", "support", "help"},
				Response: "Need more help? Contact us:\nEmail: support@shophub.com\nPhone: 1-800-SHOPHUB\nHours: Mon-Fri 9AM-6PM",
			},
			{
				Topic:    "categories",
				Keywords: []string{"category", "categories"},
				Response: "We have 5 main categories:\n- Electronics - Tech gadgets and accessories\n- Clothing - Fashion and apparel\n- Home - Kitchen, bedding, and decor\n- Accessories - Wallets, bags, jewelry\n- Health - Fitness and wellness products",
			},
			{
				Topic:    "thanks",
				Keywords: []string{"thank"},
				Response: "You're welcome! Happy shopping!",
			},
		},
	}
}

// Respond returns the canned response for the first matching rule, or the
// fallback. It never fails.
func (m *Matcher) Respond(query string) string {
	reply, _ := m.Match(query)
	return reply
}

// Match is Respond plus the matched topic name.
func (m *Matcher) Match(query string) (response, topic string) {
	q := strings.ToLower(query)
	for _, r := range m.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				return r.Response, r.Topic
			}
		}
	}
	return m.fallback, FallbackTopic
}
