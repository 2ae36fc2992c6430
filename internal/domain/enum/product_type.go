package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ProductType distinguishes goods from services. Goods carry an HSN code,
// services a SAC code; both live in the same column.
type ProductType int

const (
	ProductTypeGoods   ProductType = 0
	ProductTypeService ProductType = 1
)

func (t ProductType) String() string {
	names := [...]string{"Goods", "Service"}
	if int(t) < 0 || int(t) >= len(names) {
		return "Goods"
	}
	return names[t]
}

func (t ProductType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ProductType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = ProductType(i)
		return nil
	}
	switch str {
	case "Goods":
		*t = ProductTypeGoods
	case "Service":
		*t = ProductTypeService
	}
	return nil
}

func (t ProductType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *ProductType) Scan(value interface{}) error {
	if value == nil {
		*t = ProductTypeGoods
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = ProductType(v)
	case int:
		*t = ProductType(v)
	}
	return nil
}
