package util

import (
	"fmt"
	"strconv"
)

// ParseUint 解析路径参数里的数字ID。非法输入返回错误，由调用方映射为400。
func ParseUint(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
