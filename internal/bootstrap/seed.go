package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"learnly.id/gamification/internal/entity"
	gamificationService "learnly.id/gamification/internal/modules/gamification/service"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.Student{},
		&entity.Achievement{},
		&entity.GamificationProfile{},
		&entity.StudentAchievement{},
		&entity.Leaderboard{},
		&entity.LeaderboardEntry{},
		&entity.PointLog{},
		&entity.Notification{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: "admin", Description: "Super administrator"},
		{Name: "tutor", Description: "Tutor"},
		{Name: "student", Description: "Student"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.Student{}).
		Where("email = ?", "admin@learnly.id").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Student{
		Username:     "admin",
		Email:        "admin@learnly.id",
		PasswordHash: string(hashedPasswordBytes),
		FullName:     "Administrator",
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded successfully")
	log.Println("   Email: admin@learnly.id")
	log.Println("   Password: admin123")

	return nil
}

// SeedAchievements loads the default catalog. Existing names are left
// alone so admin edits survive a restart.
func SeedAchievements(db *gorm.DB) error {
	defaults := []entity.Achievement{
		{
			Name: "Langkah Pertama", Description: "Selesaikan materi pertamamu", Icon: "footprints",
			Category: entity.CategoryLearning, Rarity: entity.RarityCommon,
			CriteriaType: gamificationService.CriteriaLecturesCompleted, Threshold: 1,
			PointsReward: 10, ExperienceReward: 10,
		},
		{
			Name: "Pelajar Tekun", Description: "Selesaikan 10 materi", Icon: "book-open",
			Category: entity.CategoryLearning, Rarity: entity.RarityCommon,
			CriteriaType: gamificationService.CriteriaLecturesCompleted, Threshold: 10,
			PointsReward: 25, ExperienceReward: 25,
		},
		{
			Name: "Pemburu Ilmu", Description: "Selesaikan 50 materi", Icon: "graduation-cap",
			Category: entity.CategoryLearning, Rarity: entity.RarityRare,
			CriteriaType: gamificationService.CriteriaLecturesCompleted, Threshold: 50,
			PointsReward: 100, ExperienceReward: 100,
		},
		{
			Name: "Penjelajah", Description: "Mulai 5 kursus berbeda", Icon: "compass",
			Category: entity.CategoryLearning, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaExplorer, Threshold: 5,
			PointsReward: 30, ExperienceReward: 30,
		},
		{
			Name: "Juara Kursus", Description: "Selesaikan kursus pertamamu", Icon: "trophy",
			Category: entity.CategoryMilestone, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaCoursesCompleted, Threshold: 1,
			PointsReward: 50, ExperienceReward: 50,
		},
		{
			Name: "Master Kursus", Description: "Selesaikan 10 kursus", Icon: "crown",
			Category: entity.CategoryMilestone, Rarity: entity.RarityEpic,
			CriteriaType: gamificationService.CriteriaCoursesCompleted, Threshold: 10,
			PointsReward: 250, ExperienceReward: 250,
		},
		{
			Name: "Seminggu Penuh", Description: "Belajar 7 hari berturut-turut", Icon: "flame",
			Category: entity.CategoryStreak, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaStreakDays, Threshold: 7,
			PointsReward: 50, ExperienceReward: 50,
		},
		{
			Name: "Sebulan Membara", Description: "Belajar 30 hari berturut-turut", Icon: "fire",
			Category: entity.CategoryStreak, Rarity: entity.RarityEpic,
			CriteriaType: gamificationService.CriteriaStreakDays, Threshold: 30,
			PointsReward: 200, ExperienceReward: 200,
		},
		{
			Name: "Nilai Sempurna", Description: "Raih nilai 100 pada sebuah tugas", Icon: "star",
			Category: entity.CategoryLearning, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaPerfectScores, Threshold: 1,
			PointsReward: 25, ExperienceReward: 25,
		},
		{
			Name: "Perfeksionis", Description: "Raih nilai 100 pada 10 tugas", Icon: "sparkles",
			Category: entity.CategoryLearning, Rarity: entity.RarityRare,
			CriteriaType: gamificationService.CriteriaPerfectScores, Threshold: 10,
			PointsReward: 150, ExperienceReward: 150,
		},
		{
			Name: "Kupu-Kupu Sosial", Description: "Lakukan 10 interaksi sosial", Icon: "users",
			Category: entity.CategorySocial, Rarity: entity.RarityCommon,
			CriteriaType: gamificationService.CriteriaSocialInteractions, Threshold: 10,
			PointsReward: 20, ExperienceReward: 20,
		},
		{
			Name: "Tangan Terbuka", Description: "Jawab 5 permintaan bantuan", Icon: "heart-handshake",
			Category: entity.CategorySocial, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaHelpOthers, Threshold: 5,
			PointsReward: 40, ExperienceReward: 40,
		},
		{
			Name: "Mentor Muda", Description: "Selesaikan 3 sesi mentoring", Icon: "presentation",
			Category: entity.CategorySocial, Rarity: entity.RarityRare,
			CriteriaType: gamificationService.CriteriaMentor, Threshold: 3,
			PointsReward: 75, ExperienceReward: 75,
		},
		{
			Name: "Kolektor Poin", Description: "Kumpulkan poin kelipatan 100", Icon: "coins",
			Category: entity.CategoryMilestone, Rarity: entity.RarityCommon,
			CriteriaType: gamificationService.CriteriaPointsEarned, Threshold: 100,
			PointsReward: 10, ExperienceReward: 10,
			IsRepeatable: true, MaxCompletions: 0,
		},
		{
			Name: "Naik Kelas", Description: "Capai level 10", Icon: "arrow-up",
			Category: entity.CategoryMilestone, Rarity: entity.RarityRare,
			CriteriaType: gamificationService.CriteriaLevelReached, Threshold: 10,
			PointsReward: 100, ExperienceReward: 0,
		},
		{
			Name: "Burung Pagi", Description: "Belajar sebelum jam 8 pagi sebanyak 10 kali", Icon: "sunrise",
			Category: entity.CategorySpecial, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaEarlyBird, Threshold: 10,
			PointsReward: 50, ExperienceReward: 50, IsHidden: true,
		},
		{
			Name: "Burung Hantu", Description: "Belajar setelah jam 10 malam sebanyak 10 kali", Icon: "moon",
			Category: entity.CategorySpecial, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaNightOwl, Threshold: 10,
			PointsReward: 50, ExperienceReward: 50, IsHidden: true,
		},
		{
			Name: "Pejuang Akhir Pekan", Description: "Belajar di akhir pekan sebanyak 5 kali", Icon: "calendar",
			Category: entity.CategorySpecial, Rarity: entity.RarityUncommon,
			CriteriaType: gamificationService.CriteriaWeekendWarrior, Threshold: 5,
			PointsReward: 40, ExperienceReward: 40,
		},
	}

	for _, achievement := range defaults {
		var count int64
		if err := db.Model(&entity.Achievement{}).
			Where("name = ?", achievement.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		achievement.IsActive = true
		achievement.TimeFrame = entity.TimeFrameLifetime
		if !achievement.IsRepeatable && achievement.MaxCompletions == 0 {
			achievement.MaxCompletions = 1
		}
		if err := db.Create(&achievement).Error; err != nil {
			return err
		}
	}

	log.Println("Achievement catalog seeded")
	return nil
}
