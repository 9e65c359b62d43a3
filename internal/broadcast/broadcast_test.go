package broadcast

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var errClosed = errors.New("connection closed")

type mockConn struct {
	mock.Mock
}

func (that *mockConn) ID() string {
	return that.Called().String(0)
}

func (that *mockConn) Send(data []byte) error {
	return that.Called(data).Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestBroadcaster_Broadcast(t *testing.T) {
	t.Run("Delivers the same payload to every player", func(t *testing.T) {
		// Given: two players with working connections
		first, second := &mockConn{}, &mockConn{}
		message := entity.RoomUpdate{Type: entity.EventRoomUpdate, Room: entity.RoomInfo{ID: "ABC123"}}
		expected, err := json.Marshal(message)
		require.NoError(t, err)

		first.On("Send", expected).Return(nil).Once()
		second.On("Send", expected).Return(nil).Once()

		players := []*entity.Player{
			{ID: "p0", Conn: first},
			{ID: "p1", Conn: second},
		}

		// When: broadcasting
		delivered, err := New(newLogger()).Broadcast("ABC123", players, message)

		// Then: both receive it
		require.NoError(t, err)
		assert.Equal(t, 2, delivered)
		first.AssertExpectations(t)
		second.AssertExpectations(t)
	})

	t.Run("Failure on one connection does not stop the rest", func(t *testing.T) {
		// Given: a stale connection between two live ones
		live1, stale, live2 := &mockConn{}, &mockConn{}, &mockConn{}
		live1.On("Send", mock.Anything).Return(nil).Once()
		stale.On("Send", mock.Anything).Return(errClosed).Once()
		live2.On("Send", mock.Anything).Return(nil).Once()

		players := []*entity.Player{
			{ID: "p0", Conn: live1},
			{ID: "p1", Conn: stale},
			{ID: "p2", Conn: live2},
			{ID: "p3"},
		}

		// When: broadcasting
		delivered, err := New(newLogger()).Broadcast("ABC123", players, map[string]string{"type": "ping"})

		// Then: the live connections still get the message
		require.NoError(t, err)
		assert.Equal(t, 2, delivered)
		live1.AssertExpectations(t)
		stale.AssertExpectations(t)
		live2.AssertExpectations(t)
	})

	t.Run("Unencodable message is reported", func(t *testing.T) {
		conn := &mockConn{}

		_, err := New(newLogger()).Broadcast("ABC123", []*entity.Player{{ID: "p0", Conn: conn}}, make(chan int))

		require.Error(t, err)
		conn.AssertNotCalled(t, "Send", mock.Anything)
	})
}
