package validate

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type sample struct {
	Date  string `binding:"required,date"`
	Month string `binding:"omitempty,month"`
}

func TestRegister_Date(t *testing.T) {
	Register()

	if err := binding.Validator.ValidateStruct(&sample{Date: "2024-05-01"}); err != nil {
		t.Errorf("合法日期应通过: %v", err)
	}
	if err := binding.Validator.ValidateStruct(&sample{Date: "2024-13-01"}); err == nil {
		t.Error("非法月份应失败")
	}
	if err := binding.Validator.ValidateStruct(&sample{Date: "05/01/2024"}); err == nil {
		t.Error("非 YYYY-MM-DD 格式应失败")
	}
}

func TestRegister_Month(t *testing.T) {
	Register()

	if err := binding.Validator.ValidateStruct(&sample{Date: "2024-05-01", Month: "2024-05"}); err != nil {
		t.Errorf("合法月份应通过: %v", err)
	}
	if err := binding.Validator.ValidateStruct(&sample{Date: "2024-05-01", Month: "May"}); err == nil {
		t.Error("非 YYYY-MM 格式应失败")
	}
}

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()
}
