package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"skipgram/internal/analogy"
	"skipgram/internal/checkpoint"
	"skipgram/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var ckptPath string
	flag.StringVar(&ckptPath, "checkpoint", "", "Path to a trained checkpoint (defaults to $SKIPGRAM_CHECKPOINT)")
	flag.Parse()
	if ckptPath == "" {
		ckptPath = os.Getenv("SKIPGRAM_CHECKPOINT")
	}
	if ckptPath == "" && flag.NArg() > 0 {
		ckptPath = flag.Arg(0)
	}
	if ckptPath == "" {
		fmt.Println("Usage: skipgram [--checkpoint=]skipgram.ckpt")
		os.Exit(1)
	}

	m, v, err := checkpoint.Load(ckptPath)
	if err != nil {
		log.Fatalf("load checkpoint: %v", err)
	}
	ev, err := analogy.New(m, v)
	if err != nil {
		log.Fatalf("assemble evaluator: %v", err)
	}

	info := fmt.Sprintf("%s: %d words, %d dimensions", ckptPath, v.Size(), m.Dim())
	if _, err := tea.NewProgram(tui.New(ev, info)).Run(); err != nil {
		log.Fatal(err)
	}
}
