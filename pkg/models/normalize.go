package models

import (
	"encoding/json"

	"github.com/sqlgrip/sqlgrip-engine/pkg/jsonutil"
)

// NormalizeTableInfos converts the loose table-info shapes supplied by GUI
// collaborators into canonical TableInfo values. Callers historically pass
// either bare names or records with name/comment fields; both shapes are
// accepted so downstream components only ever see one.
func NormalizeTableInfos(entries []any) []TableInfo {
	catalog := make([]TableInfo, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case string:
			if v != "" {
				catalog = append(catalog, TableInfo{Name: v})
			}
		case TableInfo:
			if v.Name != "" {
				catalog = append(catalog, v)
			}
		case map[string]any:
			info := TableInfo{}
			if name, ok := v["name"].(string); ok {
				info.Name = name
			}
			if comment, ok := v["comment"].(string); ok {
				info.Comment = comment
			}
			if info.Name != "" {
				catalog = append(catalog, info)
			}
		}
	}
	return catalog
}

// UnmarshalTableInfos decodes a JSON array whose elements are either plain
// strings or {"name": ..., "comment": ...} objects. Model responses and
// pasted payloads use both shapes interchangeably.
func UnmarshalTableInfos(data []byte) ([]TableInfo, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	catalog := make([]TableInfo, 0, len(raw))
	for _, item := range raw {
		var obj struct {
			Name    json.RawMessage `json:"name"`
			Comment json.RawMessage `json:"comment"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && len(obj.Name) > 0 {
			info := TableInfo{
				Name:    jsonutil.FlexibleStringValue(obj.Name),
				Comment: jsonutil.FlexibleStringValue(obj.Comment),
			}
			if info.Name != "" {
				catalog = append(catalog, info)
			}
			continue
		}

		if name := jsonutil.FlexibleStringValue(item); name != "" {
			catalog = append(catalog, TableInfo{Name: name})
		}
	}
	return catalog, nil
}
