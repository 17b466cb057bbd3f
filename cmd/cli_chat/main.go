package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"metizcare/internal/config"
	"metizcare/internal/db"
	"metizcare/internal/domain"
	"metizcare/internal/llm"
	"metizcare/internal/repository"
	"metizcare/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	llmClient := llm.NewDisabledClient()
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			log.Fatalf("gemini: %v", err)
		}
		defer gemini.Close()
		llmClient = gemini
	} else {
		fmt.Println("GEMINI_API_KEY no configurada: el chat y el enriquecimiento del quiz quedan deshabilitados.")
	}

	assistantSvc := service.NewAssistantService(llmClient, logger)
	quizSvc := service.NewQuizService(
		repository.NewPgQuizRepository(pool),
		repository.NewPgProductRepository(pool),
		nil,
		service.NewQuizEnhancer(llmClient, logger),
		logger,
		service.WithQuizLimits(cfg.RecommendationLimit, cfg.QuizCatalogLimit),
	)

	for {
		fmt.Println("\n===== Metizcare CLI =====")
		fmt.Println("[1] Chatear con la asistente")
		fmt.Println("[2] Hacer el quiz de piel")
		fmt.Println("[3] Salir")
		fmt.Print("Selecciona una opcion: ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return
		}
		switch strings.TrimSpace(line) {
		case "1":
			if err := chatFlow(ctx, reader, assistantSvc); err != nil {
				fmt.Printf("Error en chat: %v\n", err)
			}
		case "2":
			if err := quizFlow(ctx, reader, quizSvc); err != nil {
				fmt.Printf("Error en quiz: %v\n", err)
			}
		case "3":
			return
		default:
			fmt.Println("Opcion invalida.")
		}
	}
}

// chatFlow mantiene el historial en memoria; cada turno reenvia la conversacion completa.
func chatFlow(ctx context.Context, reader *bufio.Reader, assistant *service.AssistantService) error {
	var history []llm.Message
	fmt.Println("---- Modo Chat (escribe 'salir' para terminar chat) ----")
	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		if strings.EqualFold(text, "salir") {
			return nil
		}
		if text == "" {
			continue
		}

		history = append(history, llm.Message{Role: llm.RoleUser, Content: text})
		reply, err := assistant.Chat(ctx, history)
		if err != nil {
			history = history[:len(history)-1]
			return err
		}
		history = append(history, llm.Message{Role: llm.RoleAssistant, Content: reply})
		fmt.Printf("Asistente > %s\n", reply)
	}
}

func quizFlow(ctx context.Context, reader *bufio.Reader, quizSvc *service.QuizService) error {
	profile := domain.Profile{
		SkinType: prompt(reader, "Tipo de piel (oily, dry, combination, sensitive, normal): "),
		Concerns: splitList(prompt(reader, "Preocupaciones separadas por coma (acne, aging, dark-spots...): ")),
		Budget:   prompt(reader, "Presupuesto (budget, mid-range, premium, luxury): "),
		AgeRange: prompt(reader, "Rango de edad (ej. 25-34, opcional): "),
	}

	quiz, err := quizSvc.Submit(ctx, service.SubmitQuizInput{Responses: profile})
	if err != nil {
		return err
	}

	a := quiz.Analysis
	fmt.Printf("\nSesion: %s\n", quiz.SessionID)
	fmt.Printf("Tipo de piel: %s | Preocupaciones: %s\n", quiz.Responses.SkinType, strings.Join(a.PrimaryConcerns, ", "))
	fmt.Println("Rutina de manana:")
	printSteps(a.SkinCareRoutine.Morning)
	fmt.Println("Rutina de noche:")
	printSteps(a.SkinCareRoutine.Evening)
	fmt.Println("Productos recomendados:")
	if len(a.RecommendedProducts) == 0 {
		fmt.Println("  (sin productos en el rango de presupuesto)")
	}
	for i, p := range a.RecommendedProducts {
		fmt.Printf("  %d. %s [%s] - %s\n", i+1, p.Product.Name, p.Priority, p.Reason)
	}
	if a.EnhancedByAI {
		fmt.Println("(analisis enriquecido con IA)")
	}
	return nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printSteps(steps []string) {
	for i, s := range steps {
		fmt.Printf("  %d. %s\n", i+1, s)
	}
}
