package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"math"
	"math/rand"
	"os"

	json "github.com/goccy/go-json"

	"github.com/cinevec/cinevec/dataset"
)

var titleHeads = []string{
	"The Silent",
	"Midnight",
	"The Last",
	"Crimson",
	"The Forgotten",
	"Electric",
	"The Glass",
	"Winter",
	"The Hollow",
	"Paper",
	"The Burning",
	"Neon",
	"The Seventh",
	"Iron",
	"The Restless",
	"Golden",
}

var titleTails = []string{
	"Horizon",
	"Protocol",
	"Garden",
	"Harvest",
	"Cartographer",
	"Reckoning",
	"Orchard",
	"Signal",
	"Passage",
	"Lighthouse",
	"Divide",
	"Verdict",
	"Carousel",
	"Meridian",
	"Outpost",
	"Archive",
}

var taglines = []string{
	"Some maps lead nowhere.",
	"Every signal has a sender.",
	"The past never stays buried.",
	"Trust is the first casualty.",
	"One night changes everything.",
	"Silence has a price.",
	"The truth is under the ice.",
	"Nobody leaves the valley.",
	"Memory is a weapon.",
	"The tide keeps its secrets.",
	"Every family has a locked room.",
	"The road home runs backwards.",
}

var overviewLeads = []string{
	"A retired detective",
	"Two estranged siblings",
	"An exiled cartographer",
	"A night-shift radio operator",
	"A struggling lighthouse keeper",
	"A disgraced archivist",
	"A smuggler with one last debt",
	"An aging stage magician",
	"A border-town schoolteacher",
	"A salvage crew of misfits",
}

var overviewActions = []string{
	"uncovers a conspiracy that reaches the capital",
	"inherits a house that should not exist",
	"intercepts a message meant for someone long dead",
	"returns to the village that swore to forget them",
	"finds a ledger naming everyone in town",
	"follows a frozen river toward a vanished expedition",
	"agrees to one final job against better judgment",
	"discovers the archive has been quietly rewritten",
	"shelters a stranger with a familiar face",
	"maps a coastline that changes with the tide",
}

var overviewStakes = []string{
	"before the thaw exposes what was buried.",
	"while the city looks the other way.",
	"as old allies become new enemies.",
	"with only three days until the verdict.",
	"knowing the signal will not come twice.",
	"against a storm that has its own plans.",
	"while the festival keeps everyone watching.",
	"before the last ferry leaves the island.",
}

var (
	outFileName = flag.String("out", "movies.jsonl", "output file for generated rows")
	rowCount    = flag.Int("n", 500, "number of rows to generate")
	randSeed    = flag.Int64("seed", 42, "random seed")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// rowsFromRand returns an iterator over n synthetic movie rows with
// strictly increasing identifiers.
func rowsFromRand(rng *rand.Rand, n int) iter.Seq[*dataset.Row] {
	return func(yield func(*dataset.Row) bool) {
		id := int64(0)
		for i := 0; i < n; i++ {
			id += int64(rng.Intn(3) + 1)
			if !yield(synthesizeRow(rng, id)) {
				return
			}
		}
	}
}

// synthesizeRow builds one plausible export row. A share of rows is
// deliberately imperfect so the quality filter has work to do: missing
// posters, thin vote counts, low ratings, blank titles.
func synthesizeRow(rng *rand.Rand, id int64) *dataset.Row {
	title := titleHeads[rng.Intn(len(titleHeads))] + " " + titleTails[rng.Intn(len(titleTails))]

	row := &dataset.Row{
		ID:          id,
		Title:       title,
		Overview:    overviewLeads[rng.Intn(len(overviewLeads))] + " " + overviewActions[rng.Intn(len(overviewActions))] + " " + overviewStakes[rng.Intn(len(overviewStakes))],
		PosterPath:  fmt.Sprintf("/posters/p%06d.jpg", id),
		IMDBID:      fmt.Sprintf("tt%07d", 1000000+id),
		VoteCount:   100 + int64(rng.Intn(40000)),
		VoteAverage: math.Round((5.0+rng.Float64()*4.5)*10) / 10,
	}

	if rng.Intn(3) != 0 {
		row.Tagline = taglines[rng.Intn(len(taglines))]
	}
	if rng.Intn(12) == 0 {
		row.PosterPath = ""
	}
	if rng.Intn(10) == 0 {
		row.IMDBID = ""
	}
	if rng.Intn(6) == 0 {
		row.VoteCount = int64(rng.Intn(100))
	}
	if rng.Intn(5) == 0 {
		row.VoteAverage = math.Round((1.0+rng.Float64()*4.0)*10) / 10
	}
	if rng.Intn(25) == 0 {
		row.OriginalTitle = row.Title
		row.Title = ""
	}

	return row
}

// writeRows writes each row as one JSON line and returns the row count.
func writeRows(w io.Writer, source iter.Seq[*dataset.Row]) (int, error) {
	bw := bufio.NewWriter(w)
	count := 0

	for row := range source {
		data, err := json.Marshal(row)
		if err != nil {
			return count, err
		}
		if _, err := bw.Write(data); err != nil {
			return count, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return count, err
		}
		count++
	}

	return count, bw.Flush()
}

func main() {
	flag.Parse()

	f, err := os.Create(*outFileName)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*randSeed))
	count, err := writeRows(f, rowsFromRand(rng, *rowCount))
	if err != nil {
		panic(err)
	}

	slog.Info("seed dataset written", "path", *outFileName, "rows", count)
}
