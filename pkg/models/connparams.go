package models

import (
	"encoding/json"

	"github.com/sqlgrip/sqlgrip-engine/pkg/jsonutil"
)

// UnmarshalJSON decodes connection parameters tolerantly. Models return the
// port as a number as often as a string, and occasionally quote nothing at
// all, so every field goes through the flexible converter.
func (p *ConnectionParams) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.DBType = jsonutil.FlexibleStringValue(raw["db_type"])
	p.Host = jsonutil.FlexibleStringValue(raw["host"])
	p.Port = jsonutil.FlexibleStringValue(raw["port"])
	p.Database = jsonutil.FlexibleStringValue(raw["database"])
	p.Username = jsonutil.FlexibleStringValue(raw["username"])
	p.Password = jsonutil.FlexibleStringValue(raw["password"])
	p.DriverClass = jsonutil.FlexibleStringValue(raw["driver_class"])

	return nil
}
