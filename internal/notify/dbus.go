//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = "/org/freedesktop/Notifications"

	methodNotify = notificationsName + ".Notify"
	methodClose  = notificationsName + ".CloseNotification"

	appName = "pixelpop"
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

type dbusNotifier struct {
	obj caller
}

// New connects to the session bus. Without one it returns a notifier that
// drops everything, so callers never need to check.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // headless sessions just skip notifications
	}
	return &dbusNotifier{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := n.obj.Call(methodNotify, 0,
		appName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints(notif),
		notif.Timeout,
	)
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify %q: %w", notif.Title, err)
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(methodClose, 0, id).Err
}

func hints(notif Notification) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"category":      dbus.MakeVariant("x-gnome.music"),
		"desktop-entry": dbus.MakeVariant(appName),
		"transient":     dbus.MakeVariant(notif.Urgency == UrgencyLow),
	}
}
