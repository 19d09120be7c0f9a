package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondMatchesOrderTracking(t *testing.T) {
	m := NewMatcher()

	reply, topic := m.Match("where is my order")

	assert.Equal(t, "orders", topic)
	assert.Contains(t, reply, "Orders page")
}

func TestRespondFallsBackOnUnknownQuery(t *testing.T) {
	m := NewMatcher()

	reply, topic := m.Match("xyz123")

	assert.Equal(t, FallbackTopic, topic)
	assert.Equal(t, fallbackResponse, reply)
}

func TestRespondIsCaseInsensitive(t *testing.T) {
	m := NewMatcher()

	upper := m.Respond("WHERE IS MY ORDER")
	lower := m.Respond("where is my order")

	assert.Equal(t, lower, upper)
}

func TestFirstMatchWins(t *testing.T) {
	m := NewMatcher()

	// Both the orders and the payment rule could claim this query; the
	// orders rule is checked first.
	_, topic := m.Match("track payment for my order")

	assert.Equal(t, "orders", topic)
}

func TestSubstringContainmentNotWordMatch(t *testing.T) {
	m := NewMatcher()

	// "track" is matched inside "tracking".
	_, topic := m.Match("tracking my package")

	assert.Equal(t, "orders", topic)
}

func TestGreetingRule(t *testing.T) {
	m := NewMatcher()

	_, topic := m.Match("hey there")

	assert.Equal(t, "greeting", topic)
}

func TestSessionAppendsUserThenBot(t *testing.T) {
	r := NewRegistry()
	s := r.Open()
	m := NewMatcher()

	reply := s.Post("where is my order", m, 10*time.Millisecond)

	// The user message is visible immediately, the reply is not yet.
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].FromBot)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.Equal(t, "where is my order", msgs[1].Text)
	assert.False(t, msgs[1].FromBot)

	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 3
	}, time.Second, 5*time.Millisecond)

	msgs = s.Messages()
	assert.True(t, msgs[2].FromBot)
	assert.Equal(t, reply, msgs[2].Text)
}

func TestScheduledReplyLandsAfterClose(t *testing.T) {
	r := NewRegistry()
	s := r.Open()
	m := NewMatcher()

	s.Post("hello", m, 10*time.Millisecond)
	r.Close(s.ID)

	assert.Nil(t, r.Get(s.ID))
	assert.Eventually(t, func() bool {
		return len(s.Messages()) == 3
	}, time.Second, 5*time.Millisecond)
}

func TestRegistryGetUnknownSession(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nope"))
}
