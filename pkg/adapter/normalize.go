package adapter

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/querygate/pkg/core"
)

// timestampLayout renders timestamps without trailing fractional zeros.
const timestampLayout = "2006-01-02 15:04:05.999999999"

// NormalizeValue converts a driver value into a string-or-null Value.
// The conversion is lossy: every non-NULL value becomes its string form.
func NormalizeValue(v any) core.Value {
	switch val := v.(type) {
	case nil:
		return core.Null()
	case []byte:
		return core.StringValue(string(val))
	case string:
		return core.StringValue(val)
	case time.Time:
		return core.StringValue(val.Format(timestampLayout))
	case bool:
		return core.StringValue(strconv.FormatBool(val))
	case int64:
		return core.StringValue(strconv.FormatInt(val, 10))
	case int32:
		return core.StringValue(strconv.FormatInt(int64(val), 10))
	case int:
		return core.StringValue(strconv.Itoa(val))
	case uint64:
		return core.StringValue(strconv.FormatUint(val, 10))
	case float64:
		return core.StringValue(strconv.FormatFloat(val, 'f', -1, 64))
	case float32:
		return core.StringValue(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case fmt.Stringer:
		return core.StringValue(val.String())
	default:
		return core.StringValue(fmt.Sprint(val))
	}
}

// ScanRows reads every row of rows into a ResultSet.
// The caller remains responsible for closing rows.
func ScanRows(rows *sql.Rows) (*core.ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &core.ResultSet{Columns: cols, Rows: []core.Row{}}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(core.Row, len(cols))
		for i, col := range cols {
			row[col] = NormalizeValue(values[i])
		}
		rs.Rows = append(rs.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rs, nil
}
