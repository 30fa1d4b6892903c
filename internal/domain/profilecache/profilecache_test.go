package profilecache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/internal/domain/profilecache"
)

func birth(year, month, day int) model.BirthInput {
	return model.BirthInput{
		Year: year, Month: month, Day: day, Hour: 12,
		Gender: model.Male, Confidence: model.ConfidenceHigh,
	}
}

func derived(year int) profilecache.Derived {
	return profilecache.Derived{
		Moment: model.NormalizedMoment{Year: year, Month: 1, Day: 1, Hour: 12},
	}
}

func TestKey(t *testing.T) {
	Convey("Given birth inputs", t, func() {
		Convey("The key pins every field", func() {
			in := model.BirthInput{
				Year: 1990, Month: 1, Day: 1, Hour: 12, Minute: 30,
				Longitude: 114.17, Gender: model.Female, Confidence: model.ConfidenceLow,
			}
			So(profilecache.Key(in), ShouldEqual, "1990-01-01 12:30 114.1700 female low")
		})

		Convey("Distinct inputs never collide on obvious fields", func() {
			a := birth(1990, 1, 1)
			b := birth(1990, 1, 2)
			c := birth(1990, 1, 1)
			c.Gender = model.Female

			So(profilecache.Key(a), ShouldNotEqual, profilecache.Key(b))
			So(profilecache.Key(a), ShouldNotEqual, profilecache.Key(c))
		})
	})
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty cache", t, func() {
		c := profilecache.New()

		Convey("A lookup misses", func() {
			_, ok := c.Lookup(ctx, birth(1990, 1, 1))
			So(ok, ShouldBeFalse)
			So(c.Size(), ShouldEqual, 0)
		})

		Convey("A stored derivation is found again", func() {
			c.Store(ctx, birth(1990, 1, 1), derived(1990))

			got, ok := c.Lookup(ctx, birth(1990, 1, 1))
			So(ok, ShouldBeTrue)
			So(got.Moment.Year, ShouldEqual, 1990)
			So(c.Size(), ShouldEqual, 1)
		})

		Convey("Storing the same input twice keeps one entry", func() {
			c.Store(ctx, birth(1990, 1, 1), derived(1990))
			c.Store(ctx, birth(1990, 1, 1), derived(1990))

			So(c.Size(), ShouldEqual, 1)
		})
	})

	Convey("Given a cache bounded to three entries", t, func() {
		c := profilecache.New(profilecache.WithMaxSize(3))

		for day := 1; day <= 3; day++ {
			c.Store(ctx, birth(1990, 1, day), derived(1990))
		}

		Convey("A fourth store evicts the oldest entry", func() {
			c.Store(ctx, birth(1990, 1, 4), derived(1990))

			So(c.Size(), ShouldEqual, 3)
			_, ok := c.Lookup(ctx, birth(1990, 1, 1))
			So(ok, ShouldBeFalse)
			_, ok = c.Lookup(ctx, birth(1990, 1, 4))
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given an unbounded cache", t, func() {
		c := profilecache.New(profilecache.WithMaxSize(0))

		for day := 1; day <= 28; day++ {
			c.Store(ctx, birth(1990, 1, day), derived(1990))
		}

		Convey("Nothing is evicted", func() {
			So(c.Size(), ShouldEqual, 28)
		})
	})

	Convey("Given concurrent readers and writers", t, func() {
		c := profilecache.New(profilecache.WithMaxSize(64))
		var wg sync.WaitGroup

		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 50; i++ {
					in := birth(1950+g, (i%12)+1, (i%28)+1)
					c.Store(ctx, in, derived(1950+g))
					c.Lookup(ctx, in)
				}
			}(g)
		}
		wg.Wait()

		Convey("The cache stays within its bound", func() {
			So(c.Size(), ShouldBeLessThanOrEqualTo, 64)
			So(c.Size(), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given many sequential stores past the bound", t, func() {
		c := profilecache.New(profilecache.WithMaxSize(10))

		for i := 0; i < 100; i++ {
			in := birth(1950+i%70, (i%12)+1, (i%28)+1)
			in.Minute = i % 60
			c.Store(ctx, in, derived(1950))
		}

		Convey("The size never exceeds the bound", func() {
			So(c.Size(), ShouldBeLessThanOrEqualTo, 10)
		})

		Convey("The newest entry is retrievable", func() {
			last := birth(1950+99%70, (99%12)+1, (99%28)+1)
			last.Minute = 99 % 60
			_, ok := c.Lookup(ctx, last)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestKeyStability(t *testing.T) {
	Convey("Given the same input", t, func() {
		in := birth(1984, 6, 1)

		Convey("The key is stable across calls", func() {
			So(profilecache.Key(in), ShouldEqual, profilecache.Key(in))
			So(profilecache.Key(in), ShouldEqual,
				fmt.Sprintf("%04d-%02d-%02d %02d:%02d %.4f %s %s",
					1984, 6, 1, 12, 0, 0.0, model.Male, model.ConfidenceHigh))
		})
	})
}
