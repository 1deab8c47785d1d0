package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingNotifier struct {
	sent []Notification
	id   uint32
	err  error
}

func (r *recordingNotifier) Notify(n Notification) (uint32, error) {
	r.sent = append(r.sent, n)
	return r.id, r.err
}

func (r *recordingNotifier) Close(uint32) error { return nil }

func TestUrgencyValues(t *testing.T) {
	// Values are fixed by the notification daemon protocol
	assert.Equal(t, Urgency(0), UrgencyLow)
	assert.Equal(t, Urgency(1), UrgencyNormal)
	assert.Equal(t, Urgency(2), UrgencyCritical)
}

func TestNowPlaying(t *testing.T) {
	n := NowPlaying("Cookie", "NewJeans <Official> & co", 7)

	assert.Equal(t, "Cookie", n.Title)
	assert.Equal(t, "NewJeans &lt;Official&gt; &amp; co", n.Body)
	assert.Equal(t, uint32(7), n.ReplacesID)
	assert.Equal(t, UrgencyLow, n.Urgency)
	assert.Positive(t, n.Timeout)
}

func TestSendCmd(t *testing.T) {
	r := &recordingNotifier{id: 42}

	msg := SendCmd(r, NowPlaying("a", "b", 0))().(SentMsg)

	assert.Equal(t, uint32(42), msg.ID)
	assert.NoError(t, msg.Err)
	assert.Len(t, r.sent, 1)
}

func TestSendCmd_Error(t *testing.T) {
	r := &recordingNotifier{err: errors.New("no server")}

	msg := SendCmd(r, Notification{Title: "x"})().(SentMsg)

	assert.EqualError(t, msg.Err, "no server")
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = nopNotifier{}

	id, err := n.Notify(NowPlaying("OMG", "NewJeans", 3))
	assert.Zero(t, id)
	assert.NoError(t, err)
	assert.NoError(t, n.Close(id))
}
