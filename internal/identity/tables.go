package identity

// Canonical NFL franchise names. Static reference data, loaded once.
const (
	Cardinals  Franchise = "Arizona Cardinals"
	Falcons    Franchise = "Atlanta Falcons"
	Ravens     Franchise = "Baltimore Ravens"
	Bills      Franchise = "Buffalo Bills"
	Panthers   Franchise = "Carolina Panthers"
	Bears      Franchise = "Chicago Bears"
	Bengals    Franchise = "Cincinnati Bengals"
	Browns     Franchise = "Cleveland Browns"
	Cowboys    Franchise = "Dallas Cowboys"
	Broncos    Franchise = "Denver Broncos"
	Lions      Franchise = "Detroit Lions"
	Packers    Franchise = "Green Bay Packers"
	Texans     Franchise = "Houston Texans"
	Colts      Franchise = "Indianapolis Colts"
	Jaguars    Franchise = "Jacksonville Jaguars"
	Chiefs     Franchise = "Kansas City Chiefs"
	Rams       Franchise = "Los Angeles Rams"
	Chargers   Franchise = "Los Angeles Chargers"
	Raiders    Franchise = "Las Vegas Raiders"
	Dolphins   Franchise = "Miami Dolphins"
	Vikings    Franchise = "Minnesota Vikings"
	Patriots   Franchise = "New England Patriots"
	Saints     Franchise = "New Orleans Saints"
	Giants     Franchise = "New York Giants"
	Jets       Franchise = "New York Jets"
	Eagles     Franchise = "Philadelphia Eagles"
	Steelers   Franchise = "Pittsburgh Steelers"
	Seahawks   Franchise = "Seattle Seahawks"
	FortyNiner Franchise = "San Francisco 49ers"
	Buccaneers Franchise = "Tampa Bay Buccaneers"
	Titans     Franchise = "Tennessee Titans"
	Commanders Franchise = "Washington Commanders"
)

// modernCodeEra is the first season covered by the abbreviation-code feeds.
// Records before this era resolve through the name table instead.
const modernCodeEra = 1999

// DefaultCodeAliases is the abbreviation-code alias table for the modern
// provider era. Relocation-era codes carry bounded validity windows so a
// season-aware lookup lands on the right franchise; a code can appear more
// than once when it pointed at different cities over time.
func DefaultCodeAliases() []CodeAlias {
	current := func(code string, fr Franchise) CodeAlias {
		return CodeAlias{Code: code, Franchise: fr, FromSeason: modernCodeEra}
	}
	return []CodeAlias{
		current("ARI", Cardinals),
		current("ATL", Falcons),
		current("BAL", Ravens),
		current("BUF", Bills),
		current("CAR", Panthers),
		current("CHI", Bears),
		current("CIN", Bengals),
		current("CLE", Browns),
		current("DAL", Cowboys),
		current("DEN", Broncos),
		current("DET", Lions),
		current("GB", Packers),
		current("HOU", Texans),
		current("IND", Colts),
		current("JAX", Jaguars),
		current("KC", Chiefs),
		current("LA", Rams),
		current("LAR", Rams), // alternate abbreviation
		current("MIA", Dolphins),
		current("MIN", Vikings),
		current("NE", Patriots),
		current("NO", Saints),
		current("NYG", Giants),
		current("NYJ", Jets),
		current("PHI", Eagles),
		current("PIT", Steelers),
		current("SEA", Seahawks),
		current("SF", FortyNiner),
		current("TB", Buccaneers),
		current("TEN", Titans),
		current("WAS", Commanders),

		// Relocation windows
		{Code: "STL", Franchise: Rams, FromSeason: modernCodeEra, ThroughSeason: 2015},
		{Code: "SD", Franchise: Chargers, FromSeason: modernCodeEra, ThroughSeason: 2016},
		{Code: "LAC", Franchise: Chargers, FromSeason: 2017},
		{Code: "OAK", Franchise: Raiders, FromSeason: modernCodeEra, ThroughSeason: 2019},
		{Code: "LV", Franchise: Raiders, FromSeason: 2020},
	}
}

// DefaultNameAliases maps full team name strings to franchises, covering
// both current names and historical (pre-relocation) names, plus the legacy
// abbreviations historical line feeds use for favorite identifiers. This is
// the table consulted for legacy-era records that predate the code feeds.
func DefaultNameAliases() map[string]Franchise {
	names := map[string]Franchise{
		// Historical names
		"Baltimore Colts":          Colts,
		"Houston Oilers":           Titans,
		"Tennessee Oilers":         Titans,
		"Los Angeles Raiders":      Raiders,
		"Oakland Raiders":          Raiders,
		"Phoenix Cardinals":        Cardinals,
		"St. Louis Cardinals":      Cardinals,
		"San Diego Chargers":       Chargers,
		"St. Louis Rams":           Rams,
		"Washington Redskins":      Commanders,
		"Washington Football Team": Commanders,

		// Legacy favorite-id abbreviations
		"LAR": Rams,
		"LAC": Chargers,
		"OAK": Raiders,
		"SD":  Chargers,
		"STL": Rams,
	}
	// Every current name maps to itself.
	for _, fr := range []Franchise{
		Cardinals, Falcons, Ravens, Bills, Panthers, Bears, Bengals, Browns,
		Cowboys, Broncos, Lions, Packers, Texans, Colts, Jaguars, Chiefs,
		Rams, Chargers, Raiders, Dolphins, Vikings, Patriots, Saints, Giants,
		Jets, Eagles, Steelers, Seahawks, FortyNiner, Buccaneers, Titans,
		Commanders,
	} {
		names[string(fr)] = fr
	}
	// Legacy abbreviations shared with the modern code table.
	for _, a := range DefaultCodeAliases() {
		if _, ok := names[a.Code]; !ok {
			names[a.Code] = a.Franchise
		}
	}
	return names
}

// DefaultResolver builds a resolver over the default alias tables.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultCodeAliases(), DefaultNameAliases())
}
