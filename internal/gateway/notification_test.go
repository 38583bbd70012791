package gateway

import (
	"net/url"
	"testing"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestParseNotification(t *testing.T) {
	values := url.Values{}
	values.Set("sign", "c2ln")
	values.Set("sign_type", "RSA2")
	values.Set("trade_status", "SUCCESS")
	values.Set("biz_content", `{"out_biz_no":"WITHDRAW_10_abc"}`)
	values.Set("trade_no", "20240814110075001")

	n := ParseNotification(values)

	assert.Equal(t, "c2ln", n.Sign)
	assert.Equal(t, "RSA2", n.SignType)
	assert.Equal(t, TradeStatusSuccess, n.TradeStatus)
	assert.Len(t, n.Fields, 5)

	ref, err := n.Reference()
	assert.NoError(t, err)
	assert.Equal(t, "WITHDRAW_10_abc", ref)
}

func TestNotification_Reference(t *testing.T) {
	tests := []struct {
		name       string
		bizContent string
		wantErr    bool
		want       string
	}{
		{name: "valid", bizContent: `{"out_biz_no":"WITHDRAW_482_x7k"}`, want: "WITHDRAW_482_x7k"},
		{name: "missing out_biz_no", bizContent: `{"order_id":"1"}`, wantErr: true},
		{name: "not json", bizContent: `WITHDRAW_482_x7k`, wantErr: true},
		{name: "empty", bizContent: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{BizContent: tt.bizContent}
			got, err := n.Reference()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
