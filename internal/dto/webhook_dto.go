package dto

// WebhookRequest is the LINE webhook envelope. Only the event shapes this
// bot reacts to are modeled; everything else is ignored by the controller.
type WebhookRequest struct {
	Destination string          `json:"destination"`
	Events      []*WebhookEvent `json:"events"`
}

type WebhookEvent struct {
	Type       string           `json:"type"` // "message", "postback", "memberJoined"
	ReplyToken string           `json:"replyToken"`
	Timestamp  int64            `json:"timestamp"`
	Source     *WebhookSource   `json:"source"`
	Message    *WebhookMessage  `json:"message"`
	Postback   *WebhookPostback `json:"postback"`
	Joined     *WebhookJoined   `json:"joined"`
}

type WebhookSource struct {
	Type    string `json:"type"` // "user", "group", "room"
	UserId  string `json:"userId"`
	GroupId string `json:"groupId"`
}

type WebhookMessage struct {
	Id   string `json:"id"`
	Type string `json:"type"` // only "text" is handled
	Text string `json:"text"`
}

type WebhookPostback struct {
	Data string `json:"data"`
}

type WebhookJoined struct {
	Members []*WebhookSource `json:"members"`
}
