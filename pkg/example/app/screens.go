package app

import (
	"github.com/devicelab-dev/pageobject/pkg/aip"
	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
	ex "github.com/devicelab-dev/pageobject/pkg/example/aip"
)

// HomeCell is one row of the home table.
type HomeCell string

const (
	CellLabel     HomeCell = "label"
	CellButton    HomeCell = "button"
	CellTextField HomeCell = "textField"
	CellImage     HomeCell = "image"
	CellAlert     HomeCell = "alert"
)

// HomeCells lists the rows in table order.
var HomeCells = []HomeCell{CellLabel, CellButton, CellTextField, CellImage, CellAlert}

// Alert texts shown by the alert row.
const (
	AlertTitle   = "🚨 Alert 🚨"
	AlertMessage = "[ Add here your test ]"
	AlertCancel  = "Cancel"
)

// TextFieldPlaceholder is the placeholder of the text field screen.
const TextFieldPlaceholder = "Try me 🤓"

// MainLabelText is the text of the default screen's label.
const MainLabelText = "Hello, UI tests!"

const rowHeight = 44

func (a *App) fullScreen() core.Bounds {
	return core.Bounds{Width: a.host.Config.ScreenWidth, Height: a.host.Config.ScreenHeight}
}

func (a *App) view() *mock.Node {
	return mock.NewNode(core.TypeOther, "").WithBounds(a.fullScreen())
}

func (a *App) mainScreen() *screen {
	view := a.view()
	aip.Tag(view, ex.Main, ex.MainView)

	label := mock.Text(MainLabelText).WithBounds(core.Bounds{X: 20, Y: 400, Width: 350, Height: 21})
	aip.Tag(label, ex.Main, ex.MainLabel)

	return &screen{view: view.Add(label)}
}

func (a *App) homeScreen() *screen {
	view := a.view()
	aip.Tag(view, ex.Home, ex.HomeView)

	table := mock.NewNode(core.TypeTable, "").
		WithBounds(core.Bounds{Y: 91, Width: a.host.Config.ScreenWidth, Height: a.host.Config.ScreenHeight - 91})
	aip.Tag(table, ex.Home, ex.HomeTableView)

	for i, row := range HomeCells {
		row := row
		cell := mock.NewNode(core.TypeCell, "").
			WithBounds(core.Bounds{Y: 91 + i*rowHeight, Width: a.host.Config.ScreenWidth, Height: rowHeight})
		cell.OnTap = func(*mock.Node) { a.selectCell(row) }
		cell.Add(mock.Text(string(row)).WithBounds(core.Bounds{X: 20, Y: 91 + i*rowHeight, Width: 350, Height: rowHeight}))
		table.Add(cell)
	}

	return &screen{title: "Home", view: view.Add(table)}
}

func (a *App) labelScreen() *screen {
	view := a.view()
	aip.Tag(view, ex.Label, ex.LabelView)

	label := mock.Text("I'm a label").WithBounds(core.Bounds{X: 20, Y: 400, Width: 350, Height: 21})
	aip.Tag(label, ex.Label, ex.LabelLabel)

	return &screen{title: "Label", view: view.Add(label)}
}

func (a *App) buttonScreen() *screen {
	view := a.view()
	aip.Tag(view, ex.Button, ex.ButtonView)

	button := mock.NewNode(core.TypeButton, "").
		WithLabel("Tap me").
		WithBounds(core.Bounds{X: 145, Y: 400, Width: 100, Height: 44})
	aip.Tag(button, ex.Button, ex.ButtonButton)
	button.OnTap = func(*mock.Node) { a.buttonTaps++ }

	return &screen{title: "Button", view: view.Add(button)}
}

func (a *App) textFieldScreen() *screen {
	view := a.view()
	aip.Tag(view, ex.TextField, ex.TextFieldView)

	field := mock.NewNode(core.TypeTextField, "").
		WithBounds(core.Bounds{X: 20, Y: 400, Width: 350, Height: 34})
	field.PlaceholderValue = TextFieldPlaceholder
	aip.Tag(field, ex.TextField, ex.TextFieldField)

	return &screen{title: "TextField", view: view.Add(field)}
}

func (a *App) imageScreen() *screen {
	view := a.view()
	aip.Tag(view, ex.Image, ex.ImageView)

	image := mock.NewNode(core.TypeImage, "").
		WithBounds(core.Bounds{X: 95, Y: 322, Width: 200, Height: 200})
	aip.Tag(image, ex.Image, ex.ImageImageView)

	return &screen{title: "Image", view: view.Add(image)}
}

// showAlert presents the alert of the alert row over the current screen.
func (a *App) showAlert() {
	width := a.host.Config.ScreenWidth
	alert := mock.NewNode(core.TypeAlert, "").
		WithLabel(AlertTitle).
		WithBounds(core.Bounds{X: width/2 - 135, Y: 350, Width: 270, Height: 140})

	cancel := mock.NewNode(core.TypeButton, "").
		WithLabel(AlertCancel).
		WithBounds(core.Bounds{X: width/2 - 135, Y: 446, Width: 270, Height: 44})
	cancel.OnTap = func(*mock.Node) { a.window.Remove(alert) }

	alert.Add(
		mock.Text(AlertTitle).WithBounds(core.Bounds{X: width/2 - 119, Y: 370, Width: 238, Height: 22}),
		mock.Text(AlertMessage).WithBounds(core.Bounds{X: width/2 - 119, Y: 396, Width: 238, Height: 18}),
		cancel,
	)
	a.window.Add(alert)
}
