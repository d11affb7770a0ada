package model

import "encoding/json"

// ManageAction 响应状态
const (
	StatusSuccess      = 1
	StatusFailed       = 2
	StatusNoLogin      = 4
	StatusLoginExpired = 9
	StatusBusinessErr  = 1001
)

const (
	// DefaultSystemCode is sent with every ManageAction call.
	DefaultSystemCode = "oms_crm"
	// LoginAction returns the user's function list.
	LoginAction = "candao.account.login"
	// DefaultListField holds the function list inside the login payload.
	DefaultListField = "crmReadFunctionList"
)

// ManageActionRequest is the body of POST /ManageAction.
type ManageActionRequest struct {
	ActionName   string         `json:"actionName"`
	Content      map[string]any `json:"content"`
	Token        string         `json:"token,omitempty"`
	SystemCode   string         `json:"systemCode,omitempty"`
	ClientIsGray bool           `json:"clientIsGray"`
}

// ManageActionResponse is the envelope every action replies with.
type ManageActionResponse struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	LogID  string          `json:"logId"`
	Data   json.RawMessage `json:"data"`
}

// Succeeded reports whether the envelope carries a successful status.
func (r *ManageActionResponse) Succeeded() bool {
	return r.Status == StatusSuccess
}

// LoginRequired reports whether the upstream session is gone.
func (r *ManageActionResponse) LoginRequired() bool {
	return r.Status == StatusNoLogin || r.Status == StatusLoginExpired
}
