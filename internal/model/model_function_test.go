package model

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunction_ToMenuItem(t *testing.T) {
	manual := 3
	functions := []Function{
		{BaseModel: BaseModel{ID: 7}, Code: "A", ParentCode: "ROOT", Name: "Orders", URL: "/order/list", Sort: 2, ManualSort: &manual, Status: FunctionEnabled},
		{BaseModel: BaseModel{ID: 8}, Code: "B", ParentCode: "A", Name: "Detail", URL: "/order/detail/:id", Icon: `{"hiddenMenu":true}`},
	}

	items := ToMenuItems(functions)
	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, "A", items[0].Code)
	assert.Equal(t, "ROOT", items[0].ParentCode)
	require.NotNil(t, items[0].ManualSort)
	assert.Equal(t, 3, *items[0].ManualSort)
	assert.Equal(t, `{"hiddenMenu":true}`, items[1].Icon)
	assert.Nil(t, items[1].ManualSort)
	assert.Equal(t, "t_function", Function{}.TableName())
}

func TestManageActionResponse_Status(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantSucceeded bool
		wantLogin     bool
	}{
		{name: "success", body: `{"status":1,"msg":"ok","logId":"x","data":{"a":1}}`, wantSucceeded: true},
		{name: "no login", body: `{"status":4,"msg":"login","data":null}`, wantLogin: true},
		{name: "login expired", body: `{"status":9,"msg":"expired","data":null}`, wantLogin: true},
		{name: "business error", body: `{"status":1001,"msg":"bad","data":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ManageActionResponse
			require.NoError(t, sonic.UnmarshalString(tt.body, &resp))
			assert.Equal(t, tt.wantSucceeded, resp.Succeeded())
			assert.Equal(t, tt.wantLogin, resp.LoginRequired())
		})
	}
}
