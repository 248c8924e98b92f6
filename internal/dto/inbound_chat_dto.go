package dto

// Inbound event kinds carried on the chat topic.
const (
	InboundKindText         = "text"
	InboundKindMemberJoined = "member_joined"
)

// InboundChatMessage is the queue payload between the webhook controller and
// the consumer service. MessageId doubles as the redelivery dedupe key.
type InboundChatMessage struct {
	Kind          string   `json:"kind"`
	MessageId     string   `json:"message_id"`
	ReplyToken    string   `json:"reply_token"`
	Text          string   `json:"text,omitempty"`
	UserId        string   `json:"user_id,omitempty"`
	GroupId       string   `json:"group_id,omitempty"`
	JoinedUserIds []string `json:"joined_user_ids,omitempty"`
}
