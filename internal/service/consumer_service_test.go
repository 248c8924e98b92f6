package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-rag-assistant/internal/constant"
	"line-rag-assistant/internal/dto"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/pkg/line"
)

// recordingMessenger captures outbound replies.
type recordingMessenger struct {
	replies    []string
	tokens     []string
	profile    *line.MemberProfile
	profileErr error
}

func (m *recordingMessenger) ReplyText(ctx context.Context, replyToken string, text string) error {
	m.tokens = append(m.tokens, replyToken)
	m.replies = append(m.replies, text)
	return nil
}

func (m *recordingMessenger) GetGroupMemberProfile(ctx context.Context, groupId string, userId string) (*line.MemberProfile, error) {
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

// cannedChat answers every text with a fixed reply.
type cannedChat struct {
	reply string
	seen  []string
}

func (c *cannedChat) HandleText(ctx context.Context, text string) string {
	c.seen = append(c.seen, text)
	return c.reply
}

func newConsumerForTest(chat IChatService, messenger ILineMessenger) *consumerService {
	return NewConsumerService(nil, "inbound_chat", chat, messenger, logger.NewNopLogger()).(*consumerService)
}

func inboundMessage(t *testing.T, event *dto.InboundChatMessage) *message.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return message.NewMessage("wm-id", payload)
}

func TestProcessMessageRepliesToText(t *testing.T) {
	chat := &cannedChat{reply: "答案"}
	messenger := &recordingMessenger{}
	cs := newConsumerForTest(chat, messenger)

	msg := inboundMessage(t, &dto.InboundChatMessage{
		Kind:       dto.InboundKindText,
		MessageId:  "m-1",
		ReplyToken: "token-1",
		Text:       "幾點上班？",
	})
	cs.processMessage(context.Background(), msg)

	assert.Equal(t, []string{"幾點上班？"}, chat.seen)
	assert.Equal(t, []string{"token-1"}, messenger.tokens)
	assert.Equal(t, []string{"答案"}, messenger.replies)
}

func TestProcessMessageDeduplicatesByMessageId(t *testing.T) {
	chat := &cannedChat{reply: "答案"}
	messenger := &recordingMessenger{}
	cs := newConsumerForTest(chat, messenger)

	event := &dto.InboundChatMessage{
		Kind:       dto.InboundKindText,
		MessageId:  "m-1",
		ReplyToken: "token-1",
		Text:       "幾點上班？",
	}
	cs.processMessage(context.Background(), inboundMessage(t, event))
	cs.processMessage(context.Background(), inboundMessage(t, event))

	assert.Len(t, chat.seen, 1, "redelivered event must be handled once")
	assert.Len(t, messenger.replies, 1)
}

func TestProcessMessageIgnoresMalformedPayload(t *testing.T) {
	chat := &cannedChat{reply: "答案"}
	messenger := &recordingMessenger{}
	cs := newConsumerForTest(chat, messenger)

	cs.processMessage(context.Background(), message.NewMessage("wm-id", []byte("not json")))

	assert.Empty(t, chat.seen)
	assert.Empty(t, messenger.replies)
}

func TestProcessMessageWelcomesJoinedMember(t *testing.T) {
	messenger := &recordingMessenger{
		profile: &line.MemberProfile{DisplayName: "小明", UserId: "U9"},
	}
	cs := newConsumerForTest(&cannedChat{}, messenger)

	msg := inboundMessage(t, &dto.InboundChatMessage{
		Kind:          dto.InboundKindMemberJoined,
		ReplyToken:    "token-2",
		GroupId:       "G1",
		JoinedUserIds: []string{"U9"},
	})
	cs.processMessage(context.Background(), msg)

	require.Len(t, messenger.replies, 1)
	assert.Equal(t, fmt.Sprintf(constant.ReplyWelcomeFormat, "小明"), messenger.replies[0])
	assert.Equal(t, []string{"token-2"}, messenger.tokens)
}

func TestProcessMessageWelcomeFallsBackWithoutProfile(t *testing.T) {
	messenger := &recordingMessenger{profileErr: errors.New("404")}
	cs := newConsumerForTest(&cannedChat{}, messenger)

	msg := inboundMessage(t, &dto.InboundChatMessage{
		Kind:          dto.InboundKindMemberJoined,
		ReplyToken:    "token-3",
		GroupId:       "G1",
		JoinedUserIds: []string{"U9"},
	})
	cs.processMessage(context.Background(), msg)

	require.Len(t, messenger.replies, 1)
	assert.Equal(t, constant.ReplyWelcomeFallback, messenger.replies[0])
}

func TestProcessMessageIgnoresUnknownKind(t *testing.T) {
	chat := &cannedChat{}
	messenger := &recordingMessenger{}
	cs := newConsumerForTest(chat, messenger)

	msg := inboundMessage(t, &dto.InboundChatMessage{
		Kind:       "sticker",
		ReplyToken: "token-4",
	})
	cs.processMessage(context.Background(), msg)

	assert.Empty(t, chat.seen)
	assert.Empty(t, messenger.replies)
}
