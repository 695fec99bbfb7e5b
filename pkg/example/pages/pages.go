// Package pages holds the page objects of the example app. Each page binds a
// screen's element tags to query kinds and adds its own Given and Then steps.
package pages

import (
	"github.com/devicelab-dev/pageobject/pkg/core"
	ex "github.com/devicelab-dev/pageobject/pkg/example/aip"
	"github.com/devicelab-dev/pageobject/pkg/example/app"
	"github.com/devicelab-dev/pageobject/pkg/launch"
	"github.com/devicelab-dev/pageobject/pkg/page"
)

var (
	mainResolver = page.MustNewResolver(ex.Main, page.Kinds[ex.MainElement]{
		ex.MainView:  core.TypeOther,
		ex.MainLabel: core.TypeStaticText,
	})
	homeResolver = page.MustNewResolver(ex.Home, page.Kinds[ex.HomeElement]{
		ex.HomeView:      core.TypeOther,
		ex.HomeTableView: core.TypeTable,
	})
	labelResolver = page.MustNewResolver(ex.Label, page.Kinds[ex.LabelElement]{
		ex.LabelView:  core.TypeOther,
		ex.LabelLabel: core.TypeStaticText,
	})
	buttonResolver = page.MustNewResolver(ex.Button, page.Kinds[ex.ButtonElement]{
		ex.ButtonView:   core.TypeOther,
		ex.ButtonButton: core.TypeButton,
	})
	textFieldResolver = page.MustNewResolver(ex.TextField, page.Kinds[ex.TextFieldElement]{
		ex.TextFieldView:  core.TypeOther,
		ex.TextFieldField: core.TypeTextField,
	})
	imageResolver = page.MustNewResolver(ex.Image, page.Kinds[ex.ImageElement]{
		ex.ImageView:      core.TypeOther,
		ex.ImageImageView: core.TypeImage,
	})
)

// given launches the app into scenario and reports a launch failure as fatal.
func given(t page.Reporter, a core.Application, scenario string) {
	t.Helper()
	if err := a.Launch(launch.Arguments(scenario)); err != nil {
		t.Fatalf("launch %q: %v", scenario, err)
	}
}

// MainPage is the default screen.
type MainPage struct {
	*page.Page[ex.MainElement, *MainPage]
}

// NewMainPage returns the page for the default screen.
func NewMainPage(t page.Reporter, a core.Application) *MainPage {
	p := &MainPage{}
	p.Page = page.New[ex.MainElement](t, a, mainResolver, p)
	return p
}

// GivenPage launches the app without a scenario.
func (p *MainPage) GivenPage() *MainPage {
	p.T().Helper()
	given(p.T(), p.App(), "")
	return p
}

// HomePage is the scenario list.
type HomePage struct {
	*page.Page[ex.HomeElement, *HomePage]
}

// NewHomePage returns the page for the home screen.
func NewHomePage(t page.Reporter, a core.Application) *HomePage {
	p := &HomePage{}
	p.Page = page.New[ex.HomeElement](t, a, homeResolver, p)
	return p
}

// GivenPage launches the app into the home scenario.
func (p *HomePage) GivenPage() *HomePage {
	p.T().Helper()
	given(p.T(), p.App(), app.HomeScenario)
	return p
}

// ShouldSeeLabelPage checks that the label screen is shown.
func (p *HomePage) ShouldSeeLabelPage() *HomePage {
	p.T().Helper()
	NewLabelPage(p.T(), p.App()).ThenIShouldSee(ex.LabelView)
	return p
}

// ShouldSeeButtonPage checks that the button screen is shown.
func (p *HomePage) ShouldSeeButtonPage() *HomePage {
	p.T().Helper()
	NewButtonPage(p.T(), p.App()).ThenIShouldSee(ex.ButtonView)
	return p
}

// ShouldSeeTextFieldPage checks that the text field screen is shown.
func (p *HomePage) ShouldSeeTextFieldPage() *HomePage {
	p.T().Helper()
	NewTextFieldPage(p.T(), p.App()).ThenIShouldSee(ex.TextFieldView)
	return p
}

// ShouldSeeImagePage checks that the image screen is shown.
func (p *HomePage) ShouldSeeImagePage() *HomePage {
	p.T().Helper()
	NewImagePage(p.T(), p.App()).ThenIShouldSee(ex.ImageView)
	return p
}

// WhenFocusTextField taps the field of the text field screen.
func (p *HomePage) WhenFocusTextField() *HomePage {
	p.T().Helper()
	NewTextFieldPage(p.T(), p.App()).WhenTap(ex.TextFieldField)
	return p
}

// LabelPage is the label screen.
type LabelPage struct {
	*page.Page[ex.LabelElement, *LabelPage]
}

func NewLabelPage(t page.Reporter, a core.Application) *LabelPage {
	p := &LabelPage{}
	p.Page = page.New[ex.LabelElement](t, a, labelResolver, p)
	return p
}

func (p *LabelPage) GivenPage() *LabelPage {
	p.T().Helper()
	given(p.T(), p.App(), app.LabelScenario)
	return p
}

// ButtonPage is the button screen.
type ButtonPage struct {
	*page.Page[ex.ButtonElement, *ButtonPage]
}

func NewButtonPage(t page.Reporter, a core.Application) *ButtonPage {
	p := &ButtonPage{}
	p.Page = page.New[ex.ButtonElement](t, a, buttonResolver, p)
	return p
}

func (p *ButtonPage) GivenPage() *ButtonPage {
	p.T().Helper()
	given(p.T(), p.App(), app.ButtonScenario)
	return p
}

// TextFieldPage is the text field screen.
type TextFieldPage struct {
	*page.Page[ex.TextFieldElement, *TextFieldPage]
}

func NewTextFieldPage(t page.Reporter, a core.Application) *TextFieldPage {
	p := &TextFieldPage{}
	p.Page = page.New[ex.TextFieldElement](t, a, textFieldResolver, p)
	return p
}

func (p *TextFieldPage) GivenPage() *TextFieldPage {
	p.T().Helper()
	given(p.T(), p.App(), app.TextFieldScenario)
	return p
}

// ThenIShouldSeeEmptyTextFieldWithPlaceholder checks that the field shows
// its placeholder, which an empty field reports as its value.
func (p *TextFieldPage) ThenIShouldSeeEmptyTextFieldWithPlaceholder() *TextFieldPage {
	p.T().Helper()
	return p.ThenIShouldSee(ex.TextFieldField, page.WithText(app.TextFieldPlaceholder))
}

// ImagePage is the image screen.
type ImagePage struct {
	*page.Page[ex.ImageElement, *ImagePage]
}

func NewImagePage(t page.Reporter, a core.Application) *ImagePage {
	p := &ImagePage{}
	p.Page = page.New[ex.ImageElement](t, a, imageResolver, p)
	return p
}

func (p *ImagePage) GivenPage() *ImagePage {
	p.T().Helper()
	given(p.T(), p.App(), app.ImageScenario)
	return p
}
