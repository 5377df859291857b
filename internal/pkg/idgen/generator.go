package idgen

import (
	"fmt"
	"os"
	"time"

	"github.com/sony/sonyflake"
)

// Generator 消息/审计记录ID生成器，雪花算法
type Generator struct {
	flake *sonyflake.Sonyflake
}

func NewGenerator() *Generator {
	return &Generator{
		flake: sonyflake.NewSonyflake(sonyflake.Settings{
			StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			// 容器环境拿不到私有IP时默认推导会失败，退化为进程号
			MachineID: func() (uint16, error) {
				return uint16(os.Getpid()), nil
			},
		}),
	}
}

// NextID 生成下一个ID
func (g *Generator) NextID() (int64, error) {
	id, err := g.flake.NextID()
	if err != nil {
		return 0, fmt.Errorf("生成ID失败: %w", err)
	}
	return int64(id), nil
}
