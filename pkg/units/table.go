package units

// This file defines the built-in unit table: category order, base units,
// ratios to each base, aliases and the short descriptions shown by unit info.

// Category identifiers
const (
	CategoryLength         = "Length"
	CategoryTemperature    = "Temperature"
	CategoryDigitalStorage = "Digital Storage"
	CategoryMass           = "Mass"
	CategoryTime           = "Time"
	CategoryVolume         = "Volume"
	CategoryArea           = "Area"
	CategorySpeed          = "Speed"
	CategoryEnergy         = "Energy"
	CategoryPower          = "Power"
	CategoryPressure       = "Pressure"
	CategoryData           = "Data"
)

// defaultCategories defines menu order.
var defaultCategories = []string{
	CategoryLength,
	CategoryTemperature,
	CategoryDigitalStorage,
	CategoryMass,
	CategoryTime,
	CategoryVolume,
	CategoryArea,
	CategorySpeed,
	CategoryEnergy,
	CategoryPower,
	CategoryPressure,
	CategoryData,
}

func linear(category, name, symbol string, factor float64, desc string, aliases ...string) Unit {
	return Unit{Name: name, Symbol: symbol, Factor: factor, Category: category, Description: desc, Aliases: aliases}
}

// exact is a linear unit whose symbol and aliases are compared verbatim.
func exact(category, name, symbol string, factor float64, desc string, aliases ...string) Unit {
	u := linear(category, name, symbol, factor, desc, aliases...)
	u.CaseSensitive = true
	return u
}

func temperature(name, symbol, desc string, aliases ...string) Unit {
	return Unit{Name: name, Symbol: symbol, Factor: 1, Category: CategoryTemperature, Temperature: true, Description: desc, Aliases: aliases}
}

// Digital Storage is binary (JEDEC): base sub-unit is the bit, 1 KB = 1024 B.
// Data is decimal (SI): base unit is the byte, 1 kB = 1000 B, with IEC binary units alongside.
const (
	bitsPerByte = 8
	kibi        = 1 << 10
	mebi        = 1 << 20
	gibi        = 1 << 30
	tebi        = 1 << 40
	pebi        = 1 << 50
)

var defaultUnits = []Unit{
	// Length (base: metre)
	linear(CategoryLength, "Meter", "m", 1, "Base unit of length in the metric system", "metre", "metres", "meter", "meters"),
	linear(CategoryLength, "Kilometer", "km", 1000, "1000 meters, commonly used for long distances", "kilometre", "kilometres", "kilometer", "kilometers"),
	linear(CategoryLength, "Centimeter", "cm", 0.01, "One hundredth of a meter", "centimetre", "centimetres", "centimeter", "centimeters"),
	linear(CategoryLength, "Millimeter", "mm", 0.001, "One thousandth of a meter", "millimetre", "millimetres", "millimeter", "millimeters"),
	linear(CategoryLength, "Micrometer", "µm", 1e-6, "One millionth of a meter", "um", "micron", "micrometre", "micrometer"),
	linear(CategoryLength, "Nanometer", "nm", 1e-9, "One billionth of a meter", "nanometre", "nanometer"),
	linear(CategoryLength, "Inch", "in", 0.0254, "Imperial unit of length, 1/12 of a foot", "inch", "inches"),
	linear(CategoryLength, "Foot", "ft", 0.3048, "Imperial unit of length, 12 inches", "foot", "feet"),
	linear(CategoryLength, "Yard", "yd", 0.9144, "Imperial unit of length, 3 feet", "yard", "yards"),
	linear(CategoryLength, "Mile", "mi", 1609.344, "Imperial unit of length, 5280 feet", "mile", "miles"),
	linear(CategoryLength, "Nautical Mile", "nmi", 1852, "Navigation unit of length, 1852 meters", "nauticalmile"),
	linear(CategoryLength, "Light Year", "ly", 9.4607304725808e15, "Distance light travels in one Julian year", "lightyear", "lightyears"),

	// Temperature (affine, pivot: Celsius)
	temperature("Celsius", Celsius, "Water freezes at 0 and boils at 100 at sea level", "celsius", "°C", "degC", "centigrade"),
	temperature("Fahrenheit", Fahrenheit, "Water freezes at 32 and boils at 212 at sea level", "fahrenheit", "°F", "degF"),
	temperature("Kelvin", Kelvin, "Absolute scale, 0 K is absolute zero", "kelvin"),

	// Digital Storage (base: bit, binary multiples)
	exact(CategoryDigitalStorage, "Bit", "b", 1, "Smallest unit of digital information", "bit", "bits"),
	exact(CategoryDigitalStorage, "Byte", "B", bitsPerByte, "8 bits, basic unit of digital storage", "byte", "bytes"),
	exact(CategoryDigitalStorage, "Kilobit", "Kb", kibi, "1024 bits", "kilobit", "kilobits"),
	exact(CategoryDigitalStorage, "Megabit", "Mb", mebi, "1024 kilobits", "megabit", "megabits"),
	exact(CategoryDigitalStorage, "Gigabit", "Gb", gibi, "1024 megabits", "gigabit", "gigabits"),
	linear(CategoryDigitalStorage, "Kilobyte", "KB", kibi*bitsPerByte, "1024 bytes", "kilobyte", "kilobytes"),
	linear(CategoryDigitalStorage, "Megabyte", "MB", mebi*bitsPerByte, "1024 kilobytes", "megabyte", "megabytes"),
	linear(CategoryDigitalStorage, "Gigabyte", "GB", gibi*bitsPerByte, "1024 megabytes", "gigabyte", "gigabytes"),
	linear(CategoryDigitalStorage, "Terabyte", "TB", tebi*bitsPerByte, "1024 gigabytes", "terabyte", "terabytes"),
	linear(CategoryDigitalStorage, "Petabyte", "PB", pebi*bitsPerByte, "1024 terabytes", "petabyte", "petabytes"),

	// Mass (base: gram)
	linear(CategoryMass, "Gram", "g", 1, "Base unit of mass used for everyday metric quantities", "gram", "grams", "gramme"),
	linear(CategoryMass, "Kilogram", "kg", 1000, "SI base unit of mass, 1000 grams", "kilogram", "kilograms", "kilo", "kilos"),
	linear(CategoryMass, "Milligram", "mg", 0.001, "One thousandth of a gram", "milligram", "milligrams"),
	linear(CategoryMass, "Tonne", "t", 1e6, "Metric ton, 1000 kilograms", "tonne", "tonnes", "metricton"),
	linear(CategoryMass, "Pound", "lb", 453.59237, "Avoirdupois pound, exactly 453.59237 grams", "pound", "pounds", "lbs"),
	linear(CategoryMass, "Ounce", "oz", 28.349523125, "1/16 of a pound", "ounce", "ounces"),
	linear(CategoryMass, "Stone", "st", 6350.29318, "14 pounds", "stone", "stones"),

	// Time (base: second)
	linear(CategoryTime, "Millisecond", "ms", 0.001, "One thousandth of a second", "millisecond", "milliseconds"),
	linear(CategoryTime, "Second", "s", 1, "SI base unit of time", "sec", "secs", "second", "seconds"),
	linear(CategoryTime, "Minute", "min", 60, "60 seconds", "minute", "minutes", "mins"),
	linear(CategoryTime, "Hour", "hr", 3600, "60 minutes", "h", "hour", "hours", "hrs"),
	linear(CategoryTime, "Day", "day", 86400, "24 hours", "d", "days"),
	linear(CategoryTime, "Week", "week", 604800, "7 days", "wk", "weeks"),
	linear(CategoryTime, "Year", "yr", 31536000, "Common year of 365 days", "year", "years"),

	// Volume (base: litre)
	linear(CategoryVolume, "Liter", "L", 1, "Metric unit of volume, one cubic decimeter", "litre", "litres", "liter", "liters"),
	linear(CategoryVolume, "Milliliter", "mL", 0.001, "One thousandth of a liter", "millilitre", "millilitres", "milliliter", "milliliters"),
	linear(CategoryVolume, "Cubic Meter", "m3", 1000, "1000 liters", "m³", "cubicmetre", "cubicmeter"),
	linear(CategoryVolume, "Gallon", "gal", 3.785411784, "US liquid gallon, 231 cubic inches", "gallon", "gallons"),
	linear(CategoryVolume, "Quart", "qt", 0.946352946, "US liquid quart, 1/4 gallon", "quart", "quarts"),
	linear(CategoryVolume, "Pint", "pt", 0.473176473, "US liquid pint, 1/2 quart", "pint", "pints"),
	linear(CategoryVolume, "Cup", "cup", 0.2365882365, "US customary cup, 1/2 pint", "cups"),
	linear(CategoryVolume, "Fluid Ounce", "floz", 0.0295735295625, "US fluid ounce, 1/16 pint", "fluidounce", "fluidounces"),

	// Area (base: square metre)
	linear(CategoryArea, "Square Meter", "m2", 1, "Area of a square one meter on a side", "sqm", "m²"),
	linear(CategoryArea, "Square Kilometer", "km2", 1e6, "One million square meters", "sqkm", "km²"),
	linear(CategoryArea, "Square Centimeter", "cm2", 1e-4, "One ten-thousandth of a square meter", "sqcm", "cm²"),
	linear(CategoryArea, "Square Foot", "ft2", 0.09290304, "Area of a square one foot on a side", "sqft", "ft²"),
	linear(CategoryArea, "Square Mile", "mi2", 2589988.110336, "Area of a square one mile on a side", "sqmi", "mi²"),
	linear(CategoryArea, "Acre", "ac", 4046.8564224, "43,560 square feet", "acre", "acres"),
	linear(CategoryArea, "Hectare", "ha", 1e4, "10,000 square meters", "hectare", "hectares"),

	// Speed (base: metre per second)
	linear(CategorySpeed, "Meter per Second", "m/s", 1, "SI unit of speed", "mps"),
	linear(CategorySpeed, "Kilometer per Hour", "km/h", 1000.0/3600.0, "Road speed in most of the world", "kph", "kmh"),
	linear(CategorySpeed, "Mile per Hour", "mph", 0.44704, "Road speed in the US and UK", "mi/h"),
	linear(CategorySpeed, "Knot", "kt", 1852.0/3600.0, "One nautical mile per hour", "kn", "knot", "knots"),
	linear(CategorySpeed, "Foot per Second", "ft/s", 0.3048, "Imperial unit of speed", "fps"),

	// Energy (base: joule)
	linear(CategoryEnergy, "Joule", "J", 1, "SI unit of energy", "joule", "joules"),
	linear(CategoryEnergy, "Kilojoule", "kJ", 1000, "1000 joules", "kilojoule", "kilojoules"),
	linear(CategoryEnergy, "Calorie", "cal", 4.184, "Energy needed to raise 1 g of water by 1 °C", "calorie", "calories"),
	linear(CategoryEnergy, "Kilocalorie", "kcal", 4184, "Food calorie, 1000 calories", "kilocalorie", "kilocalories"),
	linear(CategoryEnergy, "Watt Hour", "Wh", 3600, "One watt of power for one hour", "watthour"),
	linear(CategoryEnergy, "Kilowatt Hour", "kWh", 3.6e6, "One kilowatt of power for one hour", "kilowatthour"),
	linear(CategoryEnergy, "Electron Volt", "eV", 1.602176634e-19, "Energy gained by an electron moving through 1 volt", "electronvolt"),
	linear(CategoryEnergy, "British Thermal Unit", "BTU", 1055.05585262, "Energy to raise 1 lb of water by 1 °F", "btu"),

	// Power (base: watt)
	linear(CategoryPower, "Watt", "W", 1, "SI unit of power", "watt", "watts"),
	exact(CategoryPower, "Milliwatt", "mW", 0.001, "One thousandth of a watt", "milliwatt", "milliwatts"),
	linear(CategoryPower, "Kilowatt", "kW", 1000, "1000 watts", "kilowatt", "kilowatts"),
	exact(CategoryPower, "Megawatt", "MW", 1e6, "One million watts", "megawatt", "megawatts"),
	linear(CategoryPower, "Horsepower", "hp", 745.7, "Mechanical horsepower, 550 foot-pounds per second", "horsepower"),

	// Pressure (base: pascal)
	linear(CategoryPressure, "Pascal", "Pa", 1, "SI unit of pressure", "pascal", "pascals"),
	linear(CategoryPressure, "Kilopascal", "kPa", 1000, "1000 pascals", "kilopascal", "kilopascals"),
	linear(CategoryPressure, "Bar", "bar", 100000, "100,000 pascals", "bars"),
	linear(CategoryPressure, "Millibar", "mbar", 100, "One thousandth of a bar", "millibar", "millibars", "hPa"),
	linear(CategoryPressure, "Atmosphere", "atm", 101325, "Standard atmospheric pressure", "atmosphere", "atmospheres"),
	linear(CategoryPressure, "PSI", "psi", 6894.757293168, "Pounds-force per square inch"),
	linear(CategoryPressure, "Millimeter of Mercury", "mmHg", 133.322387415, "Pressure of a 1 mm column of mercury"),
	linear(CategoryPressure, "Torr", "torr", 101325.0/760.0, "1/760 of a standard atmosphere"),

	// Data (base: byte, decimal multiples plus IEC binary units)
	exact(CategoryData, "Byte", "B", 1, "8 bits", "byte", "bytes"),
	linear(CategoryData, "Kilobyte", "kB", 1e3, "1000 bytes (SI)", "kilobyte", "kilobytes"),
	linear(CategoryData, "Megabyte", "MB", 1e6, "1000 kilobytes (SI)", "megabyte", "megabytes"),
	linear(CategoryData, "Gigabyte", "GB", 1e9, "1000 megabytes (SI)", "gigabyte", "gigabytes"),
	linear(CategoryData, "Terabyte", "TB", 1e12, "1000 gigabytes (SI)", "terabyte", "terabytes"),
	linear(CategoryData, "Petabyte", "PB", 1e15, "1000 terabytes (SI)", "petabyte", "petabytes"),
	linear(CategoryData, "Kibibyte", "KiB", kibi, "1024 bytes (IEC)", "kibibyte", "kibibytes"),
	linear(CategoryData, "Mebibyte", "MiB", mebi, "1024 kibibytes (IEC)", "mebibyte", "mebibytes"),
	linear(CategoryData, "Gibibyte", "GiB", gibi, "1024 mebibytes (IEC)", "gibibyte", "gibibytes"),
	linear(CategoryData, "Tebibyte", "TiB", tebi, "1024 gibibytes (IEC)", "tebibyte", "tebibytes"),
}

// DefaultCatalog returns the built-in catalog. The table is static, so a
// validation failure is a programming error.
func DefaultCatalog() *Catalog {
	cat, err := NewCatalog(defaultCategories, defaultUnits)
	if err != nil {
		panic(err)
	}
	return cat
}
