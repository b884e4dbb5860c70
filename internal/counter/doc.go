// Package counter aggregates line counts over the files a traversal yields.
//
// # Basic Usage
//
//	filter := traverser.NewFilter([]string{"ts", "tsx"}, []string{"node_modules"})
//	c := counter.New(osfs.New("/"), filter,
//	    counter.WithLogger(logger),
//	    counter.WithRootResolver(filepath.Abs),
//	)
//
//	report, err := c.CountAll(ctx, []string{"../client/", "../server/"})
//	if err != nil {
//	    return err // cancelled
//	}
//	fmt.Println(report.Total())
//
// # Line Semantics
//
// CountLines counts the lines a readLine loop would return. "\n", "\r" and
// "\r\n" each end one line, and bytes after the last terminator form a
// final line:
//
//	""          0 lines
//	"a"         1 line
//	"a\n"       1 line
//	"a\r\nb"    2 lines
//	"\n\n"      2 lines
//
// # Failure Policy
//
// Nothing short of cancellation stops a run. A missing root, an unreadable
// directory or a file that cannot be opened or read is logged through the
// configured zap logger, recorded as a types.Diagnostic on the root's
// result, and skipped. A file that fails part way through contributes no
// lines. There are no retries.
//
// # Concurrency
//
// Counting is sequential by default. WithWorkers(n) counts up to n roots at
// once using an errgroup; files within one root are always read one after
// another. Each root's RootResult is built privately by its goroutine and
// the results are summed only after every root finishes, so no counter is
// shared between goroutines.
package counter
