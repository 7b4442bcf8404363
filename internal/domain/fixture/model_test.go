package fixture

import "testing"

func TestFixture_WithDefaults(t *testing.T) {
	t.Parallel()

	got := Fixture{ID: 1}.WithDefaults()
	if got.Venue.Name != DefaultVenueName || got.Venue.City != DefaultVenueCity {
		t.Fatalf("unexpected venue defaults: %+v", got.Venue)
	}
	if got.Status.Long != DefaultStatusLong || got.Status.Short != DefaultStatusShort {
		t.Fatalf("unexpected status defaults: %+v", got.Status)
	}

	kept := Fixture{Venue: Venue{Name: "Emirates Stadium", City: "London"}, Status: Status{Long: "Match Finished", Short: "FT"}}.WithDefaults()
	if kept.Venue.Name != "Emirates Stadium" || kept.Status.Short != "FT" {
		t.Fatalf("expected provided values to be kept: %+v", kept)
	}
}

func TestIsLiveLeagues(t *testing.T) {
	t.Parallel()

	if !IsLiveLeagues("39-140") {
		t.Fatalf("expected dash list to be live leagues")
	}
	if IsLiveLeagues("all") || IsLiveLeagues("39") {
		t.Fatalf("expected all and single id not to be live league lists")
	}
}
