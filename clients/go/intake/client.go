// Package intake provides a client for the Dr. Virtual intake API.
package intake

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is an intake API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new intake client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// doRequest performs an HTTP request.
func (c *Client) doRequest(method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)
		return nil, fmt.Errorf("intake error %d: %s", resp.StatusCode, errResp.Error)
	}

	return respBody, nil
}

// Message is a single conversation turn.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TokenResponse is the response from token generation.
type TokenResponse struct {
	Token    string `json:"token"`
	Identity string `json:"identity"`
	Room     string `json:"room"`
	URL      string `json:"url"`
}

// Token requests a LiveKit access token for a room. Identity may be empty;
// the server derives a default.
func (c *Client) Token(room, identity string) (*TokenResponse, error) {
	body, _ := json.Marshal(map[string]string{"room": room, "identity": identity})

	respBody, err := c.doRequest("POST", "/token", body)
	if err != nil {
		return nil, err
	}

	var resp TokenResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SessionResponse is the response from session lifecycle calls.
type SessionResponse struct {
	Room    string `json:"room"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Connect starts or resumes a session for a room.
func (c *Client) Connect(room string) (*SessionResponse, error) {
	body, _ := json.Marshal(map[string]string{"room": room})

	respBody, err := c.doRequest("POST", "/connect", body)
	if err != nil {
		return nil, err
	}

	var resp SessionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pause pauses a session. No persisted effect.
func (c *Client) Pause(room string) (*SessionResponse, error) {
	respBody, err := c.doRequest("POST", "/pause/"+room, nil)
	if err != nil {
		return nil, err
	}

	var resp SessionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResumeResponse carries the stored transcript for a resumed session.
type ResumeResponse struct {
	Room          string    `json:"room"`
	Messages      []Message `json:"messages"`
	Status        string    `json:"status"`
	TotalMessages int       `json:"total_messages"`
}

// Resume returns the stored transcript for a room.
func (c *Client) Resume(room string) (*ResumeResponse, error) {
	respBody, err := c.doRequest("POST", "/resume/"+room, nil)
	if err != nil {
		return nil, err
	}

	var resp ResumeResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConversationResponse is a room's transcript.
type ConversationResponse struct {
	Room     string    `json:"room"`
	Messages []Message `json:"messages"`
}

// Conversation retrieves a room's transcript, empty if unknown.
func (c *Client) Conversation(room string) (*ConversationResponse, error) {
	respBody, err := c.doRequest("GET", "/conversation/"+room, nil)
	if err != nil {
		return nil, err
	}

	var resp ConversationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rooms lists the known room identifiers.
func (c *Client) Rooms() ([]string, error) {
	respBody, err := c.doRequest("GET", "/rooms", nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Rooms []string `json:"rooms"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// End ends a session and best-effort deletes the live room.
func (c *Client) End(room string) (*SessionResponse, error) {
	respBody, err := c.doRequest("POST", "/end/"+room, nil)
	if err != nil {
		return nil, err
	}

	var resp SessionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
