package gateway

import (
	"encoding/json"
	"net/url"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
)

type TradeStatus string

const (
	TradeStatusSuccess TradeStatus = "SUCCESS"
	TradeStatusFailed  TradeStatus = "FAILED"
)

// Notification is the parsed form of an asynchronous gateway callback. The
// fields the settlement path needs are promoted; Fields keeps every posted
// key/value pair because the signature covers all of them, including optional
// ones the gateway may or may not send.
type Notification struct {
	Sign        string
	SignType    string
	TradeStatus TradeStatus
	BizContent  string
	Fields      map[string]string
}

type bizContent struct {
	OutBizNo string `json:"out_biz_no"`
}

func ParseNotification(values url.Values) *Notification {
	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}

	return &Notification{
		Sign:        fields["sign"],
		SignType:    fields["sign_type"],
		TradeStatus: TradeStatus(fields["trade_status"]),
		BizContent:  fields["biz_content"],
		Fields:      fields,
	}
}

// Reference extracts the business reference from the nested biz content block.
func (n *Notification) Reference() (string, error) {
	var bc bizContent
	if err := json.Unmarshal([]byte(n.BizContent), &bc); err != nil {
		return "", apperrors.ErrInvalidReference
	}
	if bc.OutBizNo == "" {
		return "", apperrors.ErrInvalidReference
	}
	return bc.OutBizNo, nil
}
