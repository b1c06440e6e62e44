/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、表结构迁移和各业务服务的装配启动
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/enhancement_engine_design.md
 * @stateFlow 数据库连接 -> 迁移 -> 服务装配 -> 审计初始化 -> 调度器/触发源/清理任务启动
 * @rules 确保所有依赖服务正常启动后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs main.go, api/routes.go
 */

package service

import (
	"fmt"
	"log"
	"os"

	"enhancement-service/service/ai"
	"enhancement-service/service/audit"
	"enhancement-service/service/bridge"
	"enhancement-service/service/cleanup"
	"enhancement-service/service/config"
	"enhancement-service/service/distributed_lock"
	"enhancement-service/service/enhancement"
	"enhancement-service/service/event"
	"enhancement-service/service/models"
	"enhancement-service/service/report"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                     *gorm.DB
	GlobalConfigService    *config.ConfigService
	GlobalAuditService     *audit.AuditService
	GlobalReportService    *report.ReportService
	GlobalEngine           *enhancement.Engine
	GlobalInvoker          *ai.Invoker
	GlobalEventService     *event.EventService
	GlobalKafkaPublisher   *event.KafkaPublisher
	GlobalFolderService    *bridge.FolderService
	GlobalDispatcher       *bridge.Dispatcher
	GlobalMQTTTrigger      *bridge.MQTTTrigger
	GlobalRetentionService *cleanup.RetentionService
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "postgres")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=UTC",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	err := DB.AutoMigrate(
		&models.SystemConfig{},
		&models.AuditEntry{},
		&models.EnhancementReport{},
		&models.BridgeState{},
	)
	if err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("数据库表结构迁移完成")
}

// initServices 初始化服务
func initServices() {
	GlobalConfigService = config.NewConfigService(DB)
	GlobalAuditService = audit.NewAuditService(DB, GlobalConfigService)
	GlobalReportService = report.NewReportService(DB)
	GlobalEngine = enhancement.NewEngine()
	GlobalInvoker = ai.NewInvoker(GlobalConfigService, GlobalAuditService)
	GlobalEventService = event.NewEventService()
	GlobalKafkaPublisher = event.NewKafkaPublisher(os.Getenv("KAFKA_BROKERS"))
	GlobalFolderService = bridge.NewFolderService(GlobalConfigService, GlobalAuditService)

	// 审计框架幂等初始化，失败时不提供服务
	if err := GlobalAuditService.EnsureStore(); err != nil {
		log.Fatalf("审计框架初始化失败: %v", err)
	}

	GlobalDispatcher = bridge.NewDispatcher(
		DB,
		GlobalEngine,
		GlobalInvoker,
		GlobalReportService,
		GlobalConfigService,
		GlobalAuditService,
		GlobalEventService,
		GlobalKafkaPublisher,
		GlobalFolderService,
	)
	if err := GlobalDispatcher.Start(); err != nil {
		log.Fatalf("启动控制桥调度器失败: %v", err)
	}

	// MQTT触发源，未配置broker时禁用
	GlobalMQTTTrigger = bridge.NewMQTTTrigger(
		os.Getenv("MQTT_BROKER"),
		getEnvWithDefault("MQTT_CLIENT_ID", "enhancement-service"),
		GlobalDispatcher,
	)
	if GlobalMQTTTrigger.Enabled() {
		if err := GlobalMQTTTrigger.Start(); err != nil {
			log.Printf("启动MQTT触发源失败: %v", err)
		}
	}

	// Redis分布式锁，连接失败时清理退化为本实例执行
	var lockExecutor *distributed_lock.LockExecutor
	if redisLock, err := distributed_lock.NewRedisLock(); err != nil {
		log.Printf("Redis分布式锁不可用，清理任务将在本实例直接执行: %v", err)
	} else {
		lockExecutor = distributed_lock.NewLockExecutor(redisLock)
	}

	GlobalRetentionService = cleanup.NewRetentionService(
		GlobalAuditService,
		GlobalReportService,
		GlobalConfigService,
		lockExecutor,
	)
	if err := GlobalRetentionService.StartScheduledCleanup(); err != nil {
		log.Printf("启动保留期清理调度器失败: %v", err)
	}

	log.Println("服务初始化完成")
}
