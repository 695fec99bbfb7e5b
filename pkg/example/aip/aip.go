// Package aip declares the screens of the example app and their element tags.
// The app tags its views with these identifiers and the page objects query
// them, so both sides share one declaration.
package aip

import "github.com/devicelab-dev/pageobject/pkg/aip"

// MainElement tags the default screen.
type MainElement string

const (
	MainView  MainElement = "mainView"
	MainLabel MainElement = "label"
)

// Main is the default screen shown when no scenario is selected.
var Main = aip.MustNew[MainElement]("main", MainView, MainLabel)

// HomeElement tags the home screen.
type HomeElement string

const (
	HomeView      HomeElement = "mainView"
	HomeTableView HomeElement = "tableView"
)

// Home lists the example scenarios in a table.
var Home = aip.MustNew[HomeElement]("home", HomeView, HomeTableView)

// LabelElement tags the label screen.
type LabelElement string

const (
	LabelView  LabelElement = "mainView"
	LabelLabel LabelElement = "label"
)

var Label = aip.MustNew[LabelElement]("label", LabelView, LabelLabel)

// ButtonElement tags the button screen.
type ButtonElement string

const (
	ButtonView   ButtonElement = "mainView"
	ButtonButton ButtonElement = "button"
)

var Button = aip.MustNew[ButtonElement]("button", ButtonView, ButtonButton)

// TextFieldElement tags the text field screen.
type TextFieldElement string

const (
	TextFieldView  TextFieldElement = "mainView"
	TextFieldField TextFieldElement = "textField"
)

var TextField = aip.MustNew[TextFieldElement]("textField", TextFieldView, TextFieldField)

// ImageElement tags the image screen.
type ImageElement string

const (
	ImageView      ImageElement = "mainView"
	ImageImageView ImageElement = "imageView"
)

var Image = aip.MustNew[ImageElement]("image", ImageView, ImageImageView)
