package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/habitledger/internal/calendar"
	"github.com/habitledger/internal/config"
	"github.com/habitledger/internal/db"
	"github.com/habitledger/internal/logger"
	"github.com/habitledger/internal/service"
	"gorm.io/gorm"
)

const demoDays = 21

type demoHabit struct {
	input service.HabitInput
	// hitRate 为达标概率，其余日子记录一半目标或跳过
	hitRate float64
}

var demoHabits = []demoHabit{
	{input: service.HabitInput{Title: "Reading", Unit: "chapters", Category: "Education", Icon: "📚", Color: "#6366f1", DailyGoal: 2, Recurrence: []int{1, 2, 3, 4, 5}}, hitRate: 0.8},
	{input: service.HabitInput{Title: "Water", Unit: "glasses", Category: "Health", Icon: "💧", Color: "#0ea5e9", DailyGoal: 8, Recurrence: []int{0, 1, 2, 3, 4, 5, 6}}, hitRate: 0.9},
	{input: service.HabitInput{Title: "Workout", Unit: "sessions", Category: "Fitness", Icon: "🏋️", Color: "#f97316", DailyGoal: 1, Recurrence: []int{1, 3, 5}}, hitRate: 0.7},
	{input: service.HabitInput{Title: "Meditate", Unit: "minutes", Category: "Mindfulness", Icon: "🧘", Color: "#22c55e", DailyGoal: 10, Recurrence: []int{0, 1, 2, 3, 4, 5, 6}}, hitRate: 0.6},
}

// 演示数据生成器
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("invalid timezone: %v", err)
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	created, logged, err := seed(db.DB, loc, time.Now().In(loc), demoDays)
	if err != nil {
		log.Fatal("生成演示数据失败:", err)
	}
	if created == 0 {
		fmt.Println("习惯已存在，跳过创建")
		return
	}

	fmt.Println("演示数据生成完成！")
	fmt.Printf("习惯: %d 个\n", created)
	fmt.Printf("记录: %d 条（最近 %d 天）\n", logged, demoDays)
}

// seed 在空库中创建演示习惯，并回填最近 days 天的记录
func seed(gdb *gorm.DB, loc *time.Location, today time.Time, days int) (int, int, error) {
	var count int64
	if err := gdb.Model(&db.Habit{}).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count > 0 {
		return 0, 0, nil
	}

	start := calendar.AddDays(calendar.Day(today), -days)
	habits := service.NewHabitService(gdb, loc, func() time.Time { return start })
	logs := service.NewHabitLogService(gdb, loc)
	notifications := service.NewNotificationService(gdb)
	progress := service.NewProgressService(gdb, habits, logs, notifications, service.ProgressOptions{
		Location: loc,
		Now:      func() time.Time { return today },
		Logger:   logger.Nop(),
	})

	rng := rand.New(rand.NewPCG(42, uint64(days)))

	logged := 0
	for _, demo := range demoHabits {
		habit, err := habits.Create(demo.input)
		if err != nil {
			return 0, 0, err
		}

		for i := 0; i <= days; i++ {
			d := calendar.AddDays(start, i)
			if !calendar.Contains(demo.input.Recurrence, d.Weekday()) {
				continue
			}

			input := service.HabitLogInput{HabitID: habit.ID, Date: calendar.DateKey(d), Value: demo.input.DailyGoal}
			switch roll := rng.Float64(); {
			case roll < demo.hitRate:
			case roll < demo.hitRate+(1-demo.hitRate)/2:
				input.Value = demo.input.DailyGoal / 2
			default:
				input.Value = 0
				input.Status = "skip"
			}

			if _, err := progress.RecordProgress(input); err != nil {
				return 0, 0, err
			}
			logged++
		}
	}

	return len(demoHabits), logged, nil
}
