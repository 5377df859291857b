package main

import (
	"context"

	"gitee.com/flycash/mail-delivery-platform/cmd/platform/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
)

func main() {
	if err := ego.New().Invoker(func() error {
		app, err := ioc.InitApp()
		if err != nil {
			return err
		}
		app.StartTasks(context.Background())
		return nil
	}).Run(); err != nil {
		elog.Panic("startup", elog.Any("err", err))
	}
}
