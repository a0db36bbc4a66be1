package services

import (
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
)

// schemeToDBType maps URL schemes and JDBC subprotocols to dialect names.
var schemeToDBType = map[string]string{
	"mysql":      "mysql",
	"mariadb":    "mariadb",
	"postgres":   "postgresql",
	"postgresql": "postgresql",
	"oracle":     "oracle",
	"sqlserver":  "sqlserver",
	"mssql":      "sqlserver",
	"sqlite":     "sqlite",
}

// propertyKeys maps the key spellings seen in properties files to parameter
// fields. Matching is case-insensitive with dots and dashes stripped.
var propertyKeys = map[string]func(*models.ConnectionParams, string){
	"host":     func(p *models.ConnectionParams, v string) { p.Host = v },
	"hostname": func(p *models.ConnectionParams, v string) { p.Host = v },
	"server":   func(p *models.ConnectionParams, v string) { p.Host = v },
	"port":     func(p *models.ConnectionParams, v string) { p.Port = v },
	"database": func(p *models.ConnectionParams, v string) { p.Database = v },
	"dbname":   func(p *models.ConnectionParams, v string) { p.Database = v },
	"db":       func(p *models.ConnectionParams, v string) { p.Database = v },
	"schema":   func(p *models.ConnectionParams, v string) { p.Database = v },
	"user":     func(p *models.ConnectionParams, v string) { p.Username = v },
	"username": func(p *models.ConnectionParams, v string) { p.Username = v },
	"uid":      func(p *models.ConnectionParams, v string) { p.Username = v },
	"password": func(p *models.ConnectionParams, v string) { p.Password = v },
	"pwd":      func(p *models.ConnectionParams, v string) { p.Password = v },
	"pass":     func(p *models.ConnectionParams, v string) { p.Password = v },
	"driver":   func(p *models.ConnectionParams, v string) { p.DriverClass = v },
	"driverclass":     func(p *models.ConnectionParams, v string) { p.DriverClass = v },
	"driverclassname": func(p *models.ConnectionParams, v string) { p.DriverClass = v },
	"type":            func(p *models.ConnectionParams, v string) { p.DBType = strings.ToLower(v) },
	"dbtype":          func(p *models.ConnectionParams, v string) { p.DBType = strings.ToLower(v) },
	"url": func(p *models.ConnectionParams, v string) {
		if fromURL := parseConnectionURL(v); !fromURL.IsZero() {
			mergeParams(p, fromURL)
		}
	},
	"jdbcurl": func(p *models.ConnectionParams, v string) {
		if fromURL := parseConnectionURL(v); !fromURL.IsZero() {
			mergeParams(p, fromURL)
		}
	},
}

// parseConnectionLocally tries the deterministic parsers in order: a bare
// connection URL, Spring-style nested YAML, then line-oriented key-value
// properties. Returns a zero-value result when no shape applies; the caller
// then falls back to the model.
func parseConnectionLocally(text string) *models.ConnectionParams {
	lines := nonEmptyLines(text)

	if len(lines) == 1 {
		if params := parseConnectionURL(lines[0]); !params.IsZero() {
			return params
		}
	}

	if params := parseYAML(text); !params.IsZero() {
		return params
	}

	return parseProperties(lines)
}

// parseYAML handles nested YAML configs such as Spring's
// spring.datasource block by flattening the tree into dotted keys and
// running them through the property matcher.
func parseYAML(text string) *models.ConnectionParams {
	var tree map[string]any
	if err := yaml.Unmarshal([]byte(text), &tree); err != nil || len(tree) == 0 {
		return &models.ConnectionParams{}
	}

	flat := make(map[string]string)
	flattenYAML("", tree, flat)
	if len(flat) == 0 {
		return &models.ConnectionParams{}
	}

	params := &models.ConnectionParams{}
	for key, value := range flat {
		applyProperty(params, key, value)
	}
	if params.DBType == "" && params.DriverClass != "" {
		params.DBType = dbTypeFromDriver(params.DriverClass)
	}
	return params
}

func flattenYAML(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenYAML(full, v, out)
		case string:
			out[full] = v
		case int:
			out[full] = strconv.Itoa(v)
		case float64:
			out[full] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			// booleans carry no connection information
		}
	}
}

// parseConnectionURL handles URL-style connection strings, including JDBC
// ones (jdbc:mysql://host:3306/db).
func parseConnectionURL(raw string) *models.ConnectionParams {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "jdbc:")

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return &models.ConnectionParams{}
	}

	dbType, ok := schemeToDBType[strings.ToLower(u.Scheme)]
	if !ok {
		return &models.ConnectionParams{}
	}

	params := &models.ConnectionParams{
		DBType:   dbType,
		Host:     u.Hostname(),
		Port:     u.Port(),
		Database: strings.TrimPrefix(u.Path, "/"),
	}

	if u.User != nil {
		params.Username = u.User.Username()
		if pw, set := u.User.Password(); set {
			params.Password = pw
		}
	}

	query := u.Query()
	for _, key := range []string{"user", "username"} {
		if v := query.Get(key); v != "" && params.Username == "" {
			params.Username = v
		}
	}
	for _, key := range []string{"password", "pwd"} {
		if v := query.Get(key); v != "" && params.Password == "" {
			params.Password = v
		}
	}
	if v := query.Get("databaseName"); v != "" && params.Database == "" {
		params.Database = v
	}

	return params
}

// parseProperties handles line-oriented key-value text with = or : separators.
func parseProperties(lines []string) *models.ConnectionParams {
	params := &models.ConnectionParams{}

	for _, line := range lines {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		key, value, found := splitKeyValue(line)
		if !found {
			continue
		}
		applyProperty(params, key, value)
	}

	if params.DBType == "" && params.DriverClass != "" {
		params.DBType = dbTypeFromDriver(params.DriverClass)
	}

	return params
}

// applyProperty matches a key against the known spellings and applies the
// value. Dotted prefixes like spring.datasource keep only their last
// segment for matching.
func applyProperty(params *models.ConnectionParams, key, value string) {
	if value == "" {
		return
	}
	normalized := strings.ToLower(key)
	normalized = strings.NewReplacer(".", "", "-", "", "_", "", " ", "").Replace(normalized)

	if set, ok := propertyKeys[normalized]; ok {
		set(params, value)
		return
	}
	for known, set := range propertyKeys {
		if strings.HasSuffix(normalized, known) {
			set(params, value)
			return
		}
	}
}

// splitKeyValue splits a line at the earliest = or : separator. Taking the
// earliest keeps values that embed the other separator whole, as in
// url: jdbc:mysql://h/db?user=root.
func splitKeyValue(line string) (key, value string, found bool) {
	idx := -1
	for _, sep := range []string{"=", ":"} {
		if i := strings.Index(line, sep); i > 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

func dbTypeFromDriver(driver string) string {
	lower := strings.ToLower(driver)
	switch {
	case strings.Contains(lower, "mariadb"):
		return "mariadb"
	case strings.Contains(lower, "mysql"):
		return "mysql"
	case strings.Contains(lower, "postgres"):
		return "postgresql"
	case strings.Contains(lower, "oracle"):
		return "oracle"
	case strings.Contains(lower, "sqlserver"), strings.Contains(lower, "mssql"):
		return "sqlserver"
	case strings.Contains(lower, "sqlite"):
		return "sqlite"
	default:
		return ""
	}
}

func mergeParams(dst, src *models.ConnectionParams) {
	if dst.DBType == "" {
		dst.DBType = src.DBType
	}
	if dst.Host == "" {
		dst.Host = src.Host
	}
	if dst.Port == "" {
		dst.Port = src.Port
	}
	if dst.Database == "" {
		dst.Database = src.Database
	}
	if dst.Username == "" {
		dst.Username = src.Username
	}
	if dst.Password == "" {
		dst.Password = src.Password
	}
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
