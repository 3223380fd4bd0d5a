package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
	logsvc "github.com/trezcool/darasa/services/logger"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up the record store
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}
	studentRepo := inmemdb.NewStudentRepository(db)
	attendanceRepo := inmemdb.NewAttendanceRepository(db)

	// set up services
	studentSvc := student.NewService(studentRepo)
	attendanceSvc := attendance.NewService(attendanceRepo, studentRepo, core.NewClock())

	if conf.SeedData {
		seedStudents(studentSvc, logger)
	}

	// =========================================================================
	// Start API Server

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Addr:           conf.Server.Addr,
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		StudentSvc:     studentSvc,
		AttendanceSvc:  attendanceSvc,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening on " + conf.Server.Addr)
		serverErrors <- app.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v : start shutdown", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = app.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = app.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// seedStudents adds the initial student records when the store is empty.
func seedStudents(svc *student.Service, logger core.Logger) {
	studs, err := svc.QueryAll()
	if err != nil || len(studs) > 0 {
		return
	}

	grade := 10
	seed := []student.NewStudent{
		{Name: "John Doe", Grade: &grade, Section: "Zechariah"},
		{Name: "Jane Smith", Grade: &grade, Section: "Zechariah"},
	}
	for _, ns := range seed {
		if _, err := svc.Create(ns); err != nil {
			logger.Warn(fmt.Sprintf("could not seed student %q: %v", ns.Name, err), err)
		}
	}
	logger.Info(fmt.Sprintf("seeded %d students", len(seed)))
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
