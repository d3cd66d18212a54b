package handler

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"lab-scheduler/internal/model"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册自定义 binding 标签
//
//	hhmm          零填充 24 小时制 "HH:MM"
//	weekday       Monday … Sunday
//	slot_type     Lab | Lecture | Tutorial
//	student_type  regular | extension
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin 校验引擎不是 validator/v10")
			return
		}

		rules := map[string]validator.Func{
			"hhmm": func(fl validator.FieldLevel) bool {
				return model.ValidClock(fl.Field().String())
			},
			"weekday": func(fl validator.FieldLevel) bool {
				return model.DayOfWeek(fl.Field().String()).Valid()
			},
			"slot_type": func(fl validator.FieldLevel) bool {
				return model.SlotType(fl.Field().String()).Valid()
			},
			"student_type": func(fl validator.FieldLevel) bool {
				return model.StudentType(fl.Field().String()).Valid()
			},
		}
		for tag, fn := range rules {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}
