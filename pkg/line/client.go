package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a thin LINE Messaging API client: reply sends keyed by a
// one-time reply token, plus the group member profile lookup used for
// welcome messages.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

func NewClient(accessToken string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.line.me"
	}
	return &Client{
		accessToken: accessToken,
		baseURL:     baseURL,
		httpClient:  &http.Client{},
	}
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

// MemberProfile is the subset of the profile response we use.
type MemberProfile struct {
	DisplayName string `json:"displayName"`
	UserId      string `json:"userId"`
}

// ReplyText answers an inbound event. Reply tokens are single-use and
// short-lived; a failed reply is logged by the caller, not retried.
func (c *Client) ReplyText(ctx context.Context, replyToken string, text string) error {
	payload := replyRequest{
		ReplyToken: replyToken,
		Messages:   []textMessage{{Type: "text", Text: text}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v2/bot/message/reply", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf("line reply error, code %d, body %s", res.StatusCode, string(resBody))
	}

	return nil
}

// GetGroupMemberProfile resolves the display name of a group member.
func (c *Client) GetGroupMemberProfile(ctx context.Context, groupId string, userId string) (*MemberProfile, error) {
	endpoint := fmt.Sprintf("%s/v2/bot/group/%s/member/%s", c.baseURL, groupId, userId)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("line profile error, code %d, body %s", res.StatusCode, string(resBody))
	}

	var profile MemberProfile
	if err := json.Unmarshal(resBody, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
