package model

import (
	"reflect"
	"testing"
)

func TestStringSet_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want StringSet
	}{
		{"空数组", "{}", StringSet{}},
		{"简单元素", []byte("{Microscope,Oscilloscope}"), StringSet{"Microscope", "Oscilloscope"}},
		{"带空格引号", `{"Fume hood",Centrifuge}`, StringSet{"Fume hood", "Centrifuge"}},
		{"转义引号", `{"say \"hi\"","a,b"}`, StringSet{`say "hi"`, "a,b"}},
		{"重复去重", "{PC,PC,Printer}", StringSet{"PC", "Printer"}},
		{"NULL", nil, StringSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSet
			if err := s.Scan(tt.src); err != nil {
				t.Fatalf("Scan 失败: %v", err)
			}
			if !reflect.DeepEqual(s, tt.want) {
				t.Errorf("期望 %v，实际 %v", tt.want, s)
			}
		})
	}
}

func TestStringSet_ScanInvalid(t *testing.T) {
	var s StringSet
	if err := s.Scan("Microscope"); err == nil {
		t.Error("非数组字面量应报错")
	}
	if err := s.Scan(`{"open`); err == nil {
		t.Error("未闭合引号应报错")
	}
	if err := s.Scan(42); err == nil {
		t.Error("不支持的类型应报错")
	}
}

func TestStringSet_ValueRoundTrip(t *testing.T) {
	in := NewStringSet("Fume hood", `say "hi"`, `back\slash`, "a,b")
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}

	var out StringSet
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("期望 %v，实际 %v", in, out)
	}
}

func TestNewStringSet_Normalizes(t *testing.T) {
	got := NewStringSet(" PC ", "", "PC", "Printer")
	want := StringSet{"PC", "Printer"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
	if !got.Contains("Printer") || got.Contains("Scanner") {
		t.Error("Contains 结果错误")
	}
}

func TestDayOfWeek_Index(t *testing.T) {
	for i, d := range Weekdays {
		if d.Index() != i {
			t.Errorf("%s 期望序号 %d，实际 %d", d, i, d.Index())
		}
	}
	if DayOfWeek("Funday").Valid() {
		t.Error("非法星期应无效")
	}
}

func TestEnums_Valid(t *testing.T) {
	if !SlotLab.Valid() || SlotType("Seminar").Valid() {
		t.Error("SlotType 校验错误")
	}
	if !StudentExtension.Valid() || StudentType("evening").Valid() {
		t.Error("StudentType 校验错误")
	}
	if !StatusInactive.Valid() || Status("deleted").Valid() {
		t.Error("Status 校验错误")
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "08:05", "19:59", "23:59"}
	invalid := []string{"", "8:05", "24:00", "12:60", "12:5", "noon", "12:30:00"}
	for _, s := range valid {
		if !ValidClock(s) {
			t.Errorf("%q 应合法", s)
		}
	}
	for _, s := range invalid {
		if ValidClock(s) {
			t.Errorf("%q 应非法", s)
		}
	}
}
