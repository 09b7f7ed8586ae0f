package validate

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yashjd12/attendance-tracker/config"
)

const monthLayout = "2006-01"

var once sync.Once

// Register 在 gin 的校验引擎上注册自定义 tag：
//   - date:  YYYY-MM-DD
//   - month: YYYY-MM
func Register() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("date", layoutValidator(config.DateLayout))
		_ = v.RegisterValidation("month", layoutValidator(monthLayout))
	})
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true // 必填由 required 负责
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}
