package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"skipgram/internal/analogy"
	"skipgram/internal/checkpoint"
	"skipgram/internal/config"
	"skipgram/internal/domain"
	"skipgram/internal/model"
	"skipgram/internal/pipeline"
	"skipgram/internal/sampler"
	"skipgram/internal/text"
	"skipgram/internal/trainer"
	"skipgram/internal/vocab"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		outPath string
		epochs  int
		seed    int64
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/skipgram/config.yaml if not provided)")
	flag.StringVar(&outPath, "out", "", "Checkpoint destination (overrides config)")
	flag.IntVar(&epochs, "epochs", 0, "Epoch count (overrides config)")
	flag.Int64Var(&seed, "seed", 0, "Random seed (overrides config)")
	flag.Parse()

	if cfgPath == "" {
		cfgPath = os.Getenv("SKIPGRAM_CONFIG")
	}
	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Corpus.Paths = args
	}
	if outPath != "" {
		cfg.Checkpoint.Path = outPath
	}
	if epochs > 0 {
		cfg.Learning.Epochs = epochs
	}
	if seed != 0 {
		cfg.Learning.Seed = seed
	}
	if len(cfg.Corpus.Paths) == 0 {
		fmt.Println("Usage: skipgram-train [--config=config.yaml] [--out=skipgram.ckpt] corpus/*.txt")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("bad config: %v", err)
	}

	docs, err := pipeline.LoadDocuments(cfg.Corpus.Paths, !cfg.Corpus.WholeFiles)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	// Assemble components
	stop := text.DefaultStopwords()
	if len(cfg.Corpus.Stopwords) > 0 {
		stop = text.NewSet(cfg.Corpus.Stopwords)
	}
	builder, err := pipeline.NewBuilder(text.NewCleaner(stop), cfg.Vector.Threshold, cfg.Vector.MinCount, cfg.Vector.Window)
	if err != nil {
		log.Fatalf("assemble pipeline: %v", err)
	}
	rng := rand.New(rand.NewSource(cfg.Learning.Seed))
	corpus, err := builder.Build(docs, rng)
	if err != nil {
		log.Fatalf("prepare corpus: %v", err)
	}
	log.Printf("corpus: %d documents, %d tokens cleaned, %d kept after subsampling, %d pairs, %d words",
		corpus.Stats.Documents, corpus.Stats.TokensCleaned, corpus.Stats.TokensKept, corpus.Stats.Pairs, corpus.Vocabulary.Size())

	m, err := model.New(corpus.Vocabulary.Size(), cfg.Vector.Dimension, rng)
	if err != nil {
		log.Fatalf("init model: %v", err)
	}
	neg, err := sampler.NewUnigram(corpus.Vocabulary, sampler.DefaultTableSize)
	if err != nil {
		log.Fatalf("init negative sampler: %v", err)
	}
	tr, err := trainer.New(trainer.Config{
		Epochs:          cfg.Learning.Epochs,
		BatchSize:       cfg.Learning.BatchSize,
		LearningRate:    cfg.Learning.Rate,
		Negatives:       cfg.Learning.Negatives,
		MonitorEvery:    cfg.Learning.MonitorEvery,
		CheckpointEvery: cfg.Checkpoint.EveryEpochs,
		CheckpointPath:  cfg.Checkpoint.Path,
	}, m, corpus.Vocabulary, corpus.Pairs, neg, rng, logProgress)
	if err != nil {
		log.Fatalf("assemble trainer: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = tr.Train(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		log.Printf("interrupted, writing final checkpoint")
	default:
		log.Fatalf("training failed: %v", err)
	}

	if err := checkpoint.Save(cfg.Checkpoint.Path, m, corpus.Vocabulary); err != nil {
		log.Fatalf("final checkpoint: %v", err)
	}
	log.Printf("checkpoint written to %s", cfg.Checkpoint.Path)

	printNeighbors(m, corpus.Vocabulary)
}

func logProgress(p domain.Progress) {
	switch {
	case p.Err != nil:
		log.Printf("epoch %d/%d: checkpoint failed, continuing: %v", p.Epoch, p.TotalEpochs, p.Err)
	case p.Checkpoint != "":
		log.Printf("epoch %d/%d: checkpoint written to %s", p.Epoch, p.TotalEpochs, p.Checkpoint)
	case !math.IsNaN(p.SoftmaxLoss):
		log.Printf("epoch %d/%d batch %d/%d: ns loss %.4f, softmax loss %.4f",
			p.Epoch, p.TotalEpochs, p.Batch, p.TotalBatches, p.NSLoss, p.SoftmaxLoss)
	case !math.IsNaN(p.NSLoss):
		log.Printf("epoch %d/%d done: ns loss %.4f", p.Epoch, p.TotalEpochs, p.NSLoss)
	}
}

// printNeighbors ends the run with the neighbors of the most frequent
// words, a quick sanity check that the vectors mean something. Ids are
// frequency-ordered, so the first ids are the top words.
func printNeighbors(m *model.Model, v *vocab.Vocabulary) {
	ev, err := analogy.New(m, v)
	if err != nil {
		return
	}
	n := v.Size()
	if n > 5 {
		n = 5
	}
	for id := 0; id < n; id++ {
		word, ok := v.Word(id)
		if !ok {
			continue
		}
		res, err := ev.Nearest(word, 5)
		if err != nil {
			continue
		}
		parts := make([]string, 0, len(res))
		for _, r := range res {
			parts = append(parts, fmt.Sprintf("%s %.3f", r.Word, r.Similarity))
		}
		log.Printf("nearest(%s): %s", word, strings.Join(parts, ", "))
	}
}
