package hierchunk

import (
	"context"
	"sync"
)

// Decompose decomposes source code into a hierarchy of chunks.
//
// This is the main entry point for the library. The returned list is ordered:
// the whole-file root chunk first, then every nested chunk by ascending start
// byte. The language is detected from the file path unless overridden in opts.
func Decompose(filepath string, code string, opts *Options) ([]Chunk, error) {
	options := Options{}
	if opts != nil {
		options = *opts
	}
	return decomposeSource(filepath, []byte(code), options)
}

// DecomposeBytes is like Decompose but accepts []byte instead of string.
func DecomposeBytes(filepath string, code []byte, opts *Options) ([]Chunk, error) {
	options := Options{}
	if opts != nil {
		options = *opts
	}
	return decomposeSource(filepath, code, options)
}

// Decomposer is a reusable instance with default options.
type Decomposer struct {
	options Options
}

// NewDecomposer creates a Decomposer with the given default options.
func NewDecomposer(opts *Options) *Decomposer {
	options := Options{}
	if opts != nil {
		options = *opts
	}
	return &Decomposer{options: options}
}

// Decompose decomposes source code using this instance's defaults, with
// optional per-call overrides.
func (d *Decomposer) Decompose(filepath string, code string, opts *Options) ([]Chunk, error) {
	options := d.options
	mergeOptions(&options, opts)
	return Decompose(filepath, code, &options)
}

// mergeOptions overlays non-zero fields of over onto base.
func mergeOptions(base *Options, over *Options) {
	if over == nil {
		return
	}
	if over.Language != "" {
		base.Language = over.Language
	}
	if over.Profile != nil {
		base.Profile = over.Profile
	}
	if over.MaxTokens > 0 {
		base.MaxTokens = over.MaxTokens
	}
	if over.SplitOversized {
		base.SplitOversized = true
	}
	if over.SplitImports {
		base.SplitImports = true
	}
}

// DecomposeBatch processes multiple files concurrently with per-file error
// isolation. Each file is an independent run with its own state.
func DecomposeBatch(files []FileInput, opts *BatchOptions) []BatchResult {
	return DecomposeBatchWithContext(context.Background(), files, opts)
}

// DecomposeBatchWithContext processes multiple files with a context for
// cancellation.
func DecomposeBatchWithContext(ctx context.Context, files []FileInput, opts *BatchOptions) []BatchResult {
	if len(files) == 0 {
		return []BatchResult{}
	}

	options := BatchOptions{}
	if opts != nil {
		options = *opts
	}

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	results := make([]BatchResult, len(files))
	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)

	var completed int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-work:
					if !ok {
						return
					}

					file := files[idx]
					fileOpts := options.Options
					mergeOptions(&fileOpts, file.Options)

					chunks, err := decomposeSource(file.Filepath, []byte(file.Code), fileOpts)
					if err != nil {
						results[idx] = BatchResult{Filepath: file.Filepath, Error: err}
					} else {
						results[idx] = BatchResult{Filepath: file.Filepath, Chunks: chunks}
					}

					mu.Lock()
					completed++
					if options.OnProgress != nil {
						options.OnProgress(completed, len(files), file.Filepath, err == nil)
					}
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()

	return results
}

// DecomposeBatchStream streams batch results as files complete processing.
func DecomposeBatchStream(files []FileInput, opts *BatchOptions) <-chan BatchResult {
	return DecomposeBatchStreamWithContext(context.Background(), files, opts)
}

// DecomposeBatchStreamWithContext streams batch results with a context for
// cancellation.
func DecomposeBatchStreamWithContext(ctx context.Context, files []FileInput, opts *BatchOptions) <-chan BatchResult {
	ch := make(chan BatchResult)

	if len(files) == 0 {
		close(ch)
		return ch
	}

	options := BatchOptions{}
	if opts != nil {
		options = *opts
	}

	concurrency := options.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	go func() {
		defer close(ch)

		work := make(chan FileInput, len(files))
		for _, file := range files {
			work <- file
		}
		close(work)

		var completed int
		var mu sync.Mutex
		total := len(files)

		var wg sync.WaitGroup
		for i := 0; i < concurrency; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for {
					select {
					case <-ctx.Done():
						return
					case file, ok := <-work:
						if !ok {
							return
						}

						fileOpts := options.Options
						mergeOptions(&fileOpts, file.Options)

						chunks, err := decomposeSource(file.Filepath, []byte(file.Code), fileOpts)

						var result BatchResult
						if err != nil {
							result = BatchResult{Filepath: file.Filepath, Error: err}
						} else {
							result = BatchResult{Filepath: file.Filepath, Chunks: chunks}
						}

						mu.Lock()
						completed++
						if options.OnProgress != nil {
							options.OnProgress(completed, total, file.Filepath, err == nil)
						}
						mu.Unlock()

						select {
						case <-ctx.Done():
							return
						case ch <- result:
						}
					}
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}
