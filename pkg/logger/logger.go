package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	// 定义不同级别的日志记录器，未调用SetupLogger时只输出到控制台
	DebugLogger   = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	InfoLogger    = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLogger = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger   = log.New(os.Stdout, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	debugEnabled = false
)

// SetupLogger 初始化日志配置
func SetupLogger(logDir string, debug bool) error {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("创建日志目录失败: %v", err)
	}

	// 生成当前日期的日志文件名
	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %v", err)
	}

	// 同时输出到控制台和文件
	SetOutput(io.MultiWriter(os.Stdout, logFile))
	debugEnabled = debug

	return nil
}

// SetOutput 替换所有级别日志的输出目标
func SetOutput(w io.Writer) {
	DebugLogger.SetOutput(w)
	InfoLogger.SetOutput(w)
	WarningLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
}

// Debug 记录调试级别的日志
func Debug(format string, v ...interface{}) {
	if !debugEnabled {
		return
	}
	DebugLogger.Output(2, fmt.Sprintf(format, v...))
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	WarningLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}
