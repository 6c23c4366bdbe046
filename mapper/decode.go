package mapper

import (
	"time"

	j "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/reoring/docmodel"
)

// decodeScalar reads key into p using the typed getter for *F. Any other
// type goes through the value's JSON encoding.
func decodeScalar[F any](d *docmodel.Document, key string, p *F, set *docmodel.EnumSet) error {
	var err error
	switch t := any(p).(type) {
	case *string:
		*t, err = d.String(key)
	case *bool:
		*t, err = d.Bool(key)
	case *int:
		*t, err = d.Int(key)
	case *int8:
		*t, err = d.Int8(key)
	case *int16:
		*t, err = d.Int16(key)
	case *int32:
		*t, err = d.Int32(key)
	case *int64:
		*t, err = d.Int64(key)
	case *float32:
		*t, err = d.Float32(key)
	case *float64:
		*t, err = d.Float64(key)
	case *decimal.Decimal:
		*t, err = d.Decimal(key)
	case *time.Time:
		*t, err = d.Time(key)
	case *docmodel.Enum:
		if set == nil {
			return ErrEnumSetRequired
		}
		*t, err = d.Enum(key, set)
	case *docmodel.Value:
		*t, err = d.Value(key)
	case **docmodel.Document:
		var sub *docmodel.Document
		if sub, err = d.Document(key); err == nil {
			*t = sub.Clone()
		}
	case *any:
		*t, err = d.Object(key)
	default:
		var v docmodel.Value
		if v, err = d.Value(key); err != nil {
			return err
		}
		var b []byte
		if b, err = v.MarshalJSON(); err != nil {
			return err
		}
		err = j.Unmarshal(b, p)
	}
	return err
}
