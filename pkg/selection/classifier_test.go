package selection

import "testing"

func TestRequestNamesTable(t *testing.T) {
	tests := []struct {
		name    string
		request string
		tables  []string
		want    bool
	}{
		{"explicit table mention", "query the users table", []string{"users", "orders"}, true},
		{"generic request", "only show active rows", []string{"users", "orders"}, false},
		{"another generic request", "add a filter", []string{"users", "orders"}, false},
		{"case insensitive", "show me the Orders", []string{"orders"}, true},
		{"no word boundary false positive", "remove the border styling", []string{"order"}, false},
		{"exact word match", "count rows in order", []string{"order"}, true},
		{"plural form of singular table", "list all users", []string{"user"}, true},
		{"singular form of plural table", "describe the order table", []string{"orders"}, true},
		{"empty request", "", []string{"users"}, false},
		{"no tables", "query the users table", nil, false},
		{"cjk table name substring", "查询用户表的数据", []string{"用户表"}, true},
		{"cjk table name absent", "统计订单数量", []string{"用户表"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequestNamesTable(tt.request, tt.tables); got != tt.want {
				t.Errorf("RequestNamesTable(%q, %v) = %v, want %v",
					tt.request, tt.tables, got, tt.want)
			}
		})
	}
}

func TestRequestNamesTable_Deterministic(t *testing.T) {
	request := "query the users table"
	tables := []string{"users", "orders"}
	first := RequestNamesTable(request, tables)
	for i := 0; i < 10; i++ {
		if RequestNamesTable(request, tables) != first {
			t.Fatal("classifier returned different results for identical input")
		}
	}
}
