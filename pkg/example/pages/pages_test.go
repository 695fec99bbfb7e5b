package pages

import (
	"testing"

	"github.com/devicelab-dev/pageobject/pkg/driver/mock"
	"github.com/devicelab-dev/pageobject/pkg/example/app"
)

// newDevice returns a mock host with the example app installed.
func newDevice(t *testing.T) (*mock.App, *app.App) {
	t.Helper()
	host := mock.New(mock.Config{})
	return host, app.Install(host)
}
