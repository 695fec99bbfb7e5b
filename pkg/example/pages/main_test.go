package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
	ex "github.com/devicelab-dev/pageobject/pkg/example/aip"
	"github.com/devicelab-dev/pageobject/pkg/example/app"
	"github.com/devicelab-dev/pageobject/pkg/page"
)

func TestMainScreen_WhenLoadView_SeeExpectedElements(t *testing.T) {
	host, _ := newDevice(t)

	NewMainPage(t, host).
		GivenPage().
		ThenIShouldSee(ex.MainView).
		ThenIShouldSee(ex.MainLabel, page.WithText(app.MainLabelText))

	assert.Equal(t, []string{"-FIRDebugDisabled"}, host.Arguments())
}

func TestTextField_WhenLoadView_SeePlaceholder(t *testing.T) {
	host, _ := newDevice(t)

	NewTextFieldPage(t, host).
		GivenPage().
		ThenIShouldSee(ex.TextFieldView).
		ThenIShouldSeeEmptyTextFieldWithPlaceholder().
		ThenIShouldNotSeeKeyboard()
}

func TestTextField_WhenType_SeeText(t *testing.T) {
	host, _ := newDevice(t)

	NewTextFieldPage(t, host).
		GivenPage().
		WhenType("hello", ex.TextFieldField).
		ThenIShouldSeeKeyboard().
		ThenIShouldSee(ex.TextFieldField, page.WithText("hello")).
		WhenType("bye", ex.TextFieldField).
		ThenIShouldSee(ex.TextFieldField, page.WithText("bye"))
}

func TestButton_WhenTapButton(t *testing.T) {
	host, device := newDevice(t)

	NewButtonPage(t, host).
		GivenPage().
		ThenIShouldSee(ex.ButtonButton, page.WithText("Tap me")).
		WhenTap(ex.ButtonButton)

	assert.Equal(t, 1, device.ButtonTaps())
}

func TestLabel_WhenLoadView_SeeLabel(t *testing.T) {
	host, _ := newDevice(t)

	NewLabelPage(t, host).
		GivenPage().
		ThenIShouldSee(ex.LabelLabel).
		ThenIShouldSeeNavigationBar("Label")
}

func TestImage_WhenLoadView_SeeImage(t *testing.T) {
	host, _ := newDevice(t)

	NewImagePage(t, host).
		GivenPage().
		ThenIShouldSee(ex.ImageView).
		ThenIShouldSee(ex.ImageImageView).
		Terminate()

	assert.False(t, host.Running())
}

// recorder keeps failures so a scenario that must fail can be checked.
type recorder struct {
	errors []string
	fatals []string
}

func (r *recorder) Helper() {}

func (r *recorder) Logf(string, ...any) {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, format)
}

func (r *recorder) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, format)
}

func TestMainScreen_WrongScreenFails(t *testing.T) {
	host := mock.New(mock.Config{})
	app.Install(host)
	r := &recorder{}

	NewHomePage(r, host).
		GivenPage().
		ThenIShouldSee(ex.HomeView)
	NewMainPage(r, host).ThenIShouldSee(ex.MainView)

	assert.Empty(t, r.fatals)
	assert.Len(t, r.errors, 1)
}
