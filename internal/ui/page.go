package ui

import (
	"unicode/utf8"

	"github.com/patric-chuzhbe/nexusweb/internal/user"
)

const (
	PageTitle       = "Nexus - AI-Powered Project Intelligence"
	PageDescription = "Get a comprehensive roadmap, competitive analysis, and learning resources to turn your app idea into a successful digital product."
	PageKeywords    = "AI, project planning, roadmap, market analysis, startup, app idea"
	ThemeColor      = "#8b5cf6"

	// MaxIdeaLength is the advisory limit shown by the character counter.
	MaxIdeaLength = 500
)

// AuthMode selects the form shown by the auth modal.
type AuthMode string

const (
	AuthLogin  AuthMode = "login"
	AuthSignup AuthMode = "signup"
)

// ParseAuthMode maps a query value to a mode. ok is false for anything else.
func ParseAuthMode(value string) (AuthMode, bool) {
	switch AuthMode(value) {
	case AuthLogin:
		return AuthLogin, true
	case AuthSignup:
		return AuthSignup, true
	}

	return "", false
}

// Page is everything the landing page template needs.
type Page struct {
	Header    Header
	Generator Generator
	Results   *Results
	AuthModal AuthModal
}

func (p Page) Title() string       { return PageTitle }
func (p Page) Description() string { return PageDescription }
func (p Page) Keywords() string    { return PageKeywords }
func (p Page) ThemeColor() string  { return ThemeColor }
func (p Page) Features() []Feature { return Features }

type Header struct {
	User     *user.User
	MenuOpen bool
}

func (h Header) SignInButton() Button {
	return Button{Label: "Sign In", Variant: ButtonNexusGhost, Size: ButtonSM, Href: "/?auth=login"}
}

func (h Header) GetStartedButton() Button {
	return Button{Label: "Get Started", Variant: ButtonNexus, Size: ButtonSM, Href: "/?auth=signup"}
}

func (h Header) LogoutButton() Button {
	return Button{Label: "Sign Out", Variant: ButtonNexusOutline, Size: ButtonSM, Type: "submit"}
}

// MenuHref toggles the mobile menu.
func (h Header) MenuHref() string {
	if h.MenuOpen {
		return "/"
	}

	return "/?menu=open"
}

// NavLink is an in-page anchor of the header.
type NavLink struct {
	Label string
	Href  string
}

func (h Header) NavLinks() []NavLink {
	return []NavLink{
		{Label: "Features", Href: "#features"},
		{Label: "Pricing", Href: "#pricing"},
		{Label: "About", Href: "#about"},
		{Label: "Docs", Href: "#docs"},
	}
}

type Generator struct {
	Idea          string
	Error         string
	Authenticated bool
}

// Count is the rune length of the idea for the counter.
func (g Generator) Count() int {
	return utf8.RuneCountInString(g.Idea)
}

func (g Generator) Max() int {
	return MaxIdeaLength
}

func (g Generator) SubmitButton() Button {
	return Button{Label: "Generate Roadmap", Variant: ButtonNexus, Size: ButtonLG, Type: "submit", Class: "w-full"}
}

func (g Generator) SignInToSaveButton() Button {
	return Button{Label: "Sign In to Save", Variant: ButtonNexusOutline, Size: ButtonLG, Href: "/?auth=login", Class: "w-full"}
}

func (g Generator) Card() Card {
	return Card{Variant: CardGlass, Glow: true, Class: "generator-card"}
}

type AuthModal struct {
	Open  bool
	Mode  AuthMode
	Error string
	Name  string
	Email string
}

func (m AuthModal) IsSignup() bool {
	return m.Mode == AuthSignup
}

func (m AuthModal) Heading() string {
	if m.IsSignup() {
		return "Join Nexus"
	}

	return "Welcome Back"
}

func (m AuthModal) Subtitle() string {
	if m.IsSignup() {
		return "Create your account to start building"
	}

	return "Sign in to access your project roadmaps"
}

func (m AuthModal) Action() string {
	if m.IsSignup() {
		return "/signup"
	}

	return "/login"
}

func (m AuthModal) SwitchPrompt() string {
	if m.IsSignup() {
		return "Already have an account?"
	}

	return "Don't have an account?"
}

func (m AuthModal) SwitchLabel() string {
	if m.IsSignup() {
		return "Sign In"
	}

	return "Sign Up"
}

func (m AuthModal) SwitchHref() string {
	if m.IsSignup() {
		return "/?auth=login"
	}

	return "/?auth=signup"
}

func (m AuthModal) SubmitButton() Button {
	label := "Sign In"
	if m.IsSignup() {
		label = "Create Account"
	}

	return Button{Label: label, Variant: ButtonNexus, Size: ButtonLG, Type: "submit", Class: "w-full"}
}

func (m AuthModal) Card() Card {
	return Card{Variant: CardElevated, Glow: true, Class: "auth-card"}
}
