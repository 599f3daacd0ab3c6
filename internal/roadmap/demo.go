package roadmap

// Phase is one stage of a roadmap.
type Phase struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Duration      string   `json:"duration"`
	Description   string   `json:"description"`
	KeyActivities []string `json:"key_activities"`
	Deliverables  []string `json:"deliverables"`
	Status        string   `json:"status"`
}

type Opportunity struct {
	MarketSize       string   `json:"market_size"`
	TargetAudience   string   `json:"target_audience"`
	PainPoints       []string `json:"pain_points"`
	OpportunityScore float64  `json:"opportunity_score"`
	MarketTrends     []string `json:"market_trends"`
}

type TechStack struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
	Hosting  []string `json:"hosting"`
}

// Demo is the shape of the built-in roadmap.
type Demo struct {
	ProjectName         string      `json:"project_name"`
	EstimatedTimeline   string      `json:"estimated_timeline"`
	Phases              []Phase     `json:"phases"`
	SuccessMetrics      []string    `json:"success_metrics"`
	OpportunityAnalysis Opportunity `json:"opportunity_analysis"`
	TechStack           TechStack   `json:"tech_stack"`
}

// DemoRoadmap builds the generic roadmap served when the backend is unavailable.
func DemoRoadmap(idea string) Demo {
	return Demo{
		ProjectName:       idea + " - Strategic Roadmap",
		EstimatedTimeline: "6-12 months",
		Phases: []Phase{
			{
				ID:          1,
				Title:       "Market Validation & MVP",
				Duration:    "4-8 weeks",
				Description: "Validate your idea and build core features",
				KeyActivities: []string{
					"Market research and competitor analysis",
					"User interviews and feedback collection",
					"MVP feature definition and prioritization",
					"Technical architecture planning",
				},
				Deliverables: []string{"Market validation report", "MVP feature list", "Technical specifications"},
				Status:       "ready",
			},
			{
				ID:          2,
				Title:       "Development & Testing",
				Duration:    "8-16 weeks",
				Description: "Build, test, and refine your product",
				KeyActivities: []string{
					"Frontend and backend development",
					"Database design and implementation",
					"User testing and feedback integration",
					"Performance optimization",
				},
				Deliverables: []string{"Working MVP", "Test reports", "User feedback analysis"},
				Status:       "upcoming",
			},
			{
				ID:          3,
				Title:       "Launch & Growth",
				Duration:    "12+ weeks",
				Description: "Launch publicly and scale your user base",
				KeyActivities: []string{
					"Product launch strategy",
					"User acquisition campaigns",
					"Analytics and metrics tracking",
					"Feature expansion based on usage",
				},
				Deliverables: []string{"Public launch", "User acquisition metrics", "Growth strategy"},
				Status:       "future",
			},
		},
		SuccessMetrics: []string{
			"User acquisition rate",
			"Product-market fit indicators",
			"Revenue growth (if applicable)",
			"User engagement metrics",
		},
		OpportunityAnalysis: Opportunity{
			MarketSize:     "Large and growing market with significant potential",
			TargetAudience: "Identified based on market research and competitor analysis",
			PainPoints: []string{
				"Current solutions are outdated or difficult to use",
				"Lack of comprehensive features in existing products",
				"High cost barriers in current market offerings",
			},
			OpportunityScore: 8.5,
			MarketTrends: []string{
				"Increasing demand for digital solutions",
				"Growing mobile-first user base",
			},
		},
		TechStack: TechStack{
			Frontend: []string{"React", "TypeScript", "Tailwind CSS"},
			Backend:  []string{"Go", "PostgreSQL"},
			Database: []string{"PostgreSQL", "Redis"},
			Hosting:  []string{"Docker", "Managed cloud platform"},
		},
	}
}
