package ui

// Feature is one card of the features section.
type Feature struct {
	Title       string
	Description string
	Icon        string
	Color       string
}

func (f Feature) Card() Card {
	return Card{Variant: CardGlass, Glow: f.Color == "purple", Class: "feature-card feature-" + f.Color}
}

// Features lists the product capabilities in display order.
var Features = []Feature{
	{
		Title:       "Interactive AI Chat",
		Description: "Continuously refine your project with natural conversations.",
		Icon:        "💬",
		Color:       "purple",
	},
	{
		Title:       "Sentiment Analysis",
		Description: "Understand user feedback and market sentiment.",
		Icon:        "📊",
		Color:       "blue",
	},
	{
		Title:       "Smart Roadmaps",
		Description: "Generate comprehensive project roadmaps with AI-powered suggestions.",
		Icon:        "🗺️",
		Color:       "green",
	},
	{
		Title:       "Market Analysis",
		Description: "Deep dive into your target market and competition.",
		Icon:        "🎯",
		Color:       "purple",
	},
	{
		Title:       "AI-Powered Insights",
		Description: "Get intelligent recommendations based on millions of data points.",
		Icon:        "🧠",
		Color:       "blue",
	},
	{
		Title:       "User Research",
		Description: "Understand your users before you build.",
		Icon:        "👥",
		Color:       "green",
	},
}
