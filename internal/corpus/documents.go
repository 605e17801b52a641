package corpus

import "github.com/rocklab/geoqa/internal/core/domain"

// Default returns the built-in curated corpus in its canonical order.
// Order matters: retrieval ties resolve to the earlier document.
func Default() []domain.Document {
	return []domain.Document{
		{
			ID:    "cpt_analysis_basics",
			Title: "CPT Analysis for Settlement in Settle3",
			Tags:  []string{"cpt", "settlement"},
			Body: `# CPT Analysis for Settlement Calculations

The Cone Penetration Test (CPT) is a fundamental geotechnical investigation method used in settlement analysis within Settle3. CPT provides continuous profiling of soil properties including tip resistance (qc), sleeve friction (fs), and pore water pressure (u).

## Key Parameters from CPT

**Tip Resistance (qc)**: Primary parameter indicating soil strength and bearing capacity. Higher values indicate denser/stronger soils.

**Friction Ratio (Rf)**: Calculated as fs/qc x 100%, used for soil classification. Sandy soils typically show Rf < 1%, while clayey soils show Rf > 3%.

**Soil Behavior Type Index (Ic)**: Derived parameter combining qc, fs, and effective stress to classify soil behavior for settlement calculations.

## Settlement Calculations

CPT data is used to estimate elastic modulus (E) through empirical correlations:
- For sands: E = alpha x qc (where alpha = 2-4 for normally consolidated sands)
- For clays: E = beta x (qc - sigma_vo) (where beta = 3-8 depending on plasticity)

The settlement calculation integrates stress-strain relationships derived from CPT parameters through the soil profile. Settle3 uses these correlations to predict immediate and consolidation settlements.`,
		},
		{
			ID:    "liquefaction_analysis",
			Title: "Liquefaction Analysis in Settle3",
			Tags:  []string{"liquefaction", "seismic"},
			Body: `# Liquefaction Analysis Using Settle3

Liquefaction analysis evaluates the potential for soil liquefaction during seismic events. Settle3 implements advanced procedures based on CPT data for liquefaction assessment.

## CPT-Based Liquefaction Assessment

**Cyclic Resistance Ratio (CRR)**: Represents soil's resistance to liquefaction, calculated from normalized CPT tip resistance (qc1N).

**Cyclic Stress Ratio (CSR)**: Represents seismic demand on soil, calculated from peak ground acceleration and soil conditions.

## Key Steps in Analysis

1. **Data Processing**: Clean and normalize CPT data for depth, overburden stress, and equipment variations.

2. **Soil Classification**: Use Robertson (2009) charts to identify liquefiable soil layers based on Ic and qc1N values.

3. **CRR Calculation**: Apply Boulanger & Idriss (2014) correlations for clean sands, with corrections for fines content.

4. **Factor of Safety**: Calculate FS = CRR/CSR for each depth increment.

## Critical Parameters

- **Fines Content (FC)**: Affects liquefaction resistance, estimated from CPT using Ic parameter
- **Magnitude Scaling Factor (MSF)**: Adjusts CSR for earthquake magnitude effects
- **Overburden Correction (K-sigma)**: Accounts for confining stress effects on liquefaction resistance

Settle3 provides automated workflows for processing CPT data through these procedures, generating liquefaction potential profiles and safety factor distributions.`,
		},
		{
			ID:    "settle3_help_overview",
			Title: "Settle3 Software Overview",
			Tags:  []string{"settle3", "software"},
			Body: `# Settle3 Software Help Guide

Settle3 is a comprehensive 3D settlement analysis software developed by Rocscience for geotechnical engineering applications.

## Main Features

**Multi-Layer Analysis**: Handles complex soil profiles with varying properties, allowing detailed modeling of heterogeneous ground conditions.

**Load Types**: Supports various loading conditions including point loads, distributed loads, embankments, and foundation systems.

**Settlement Methods**: Implements multiple calculation approaches including elastic theory, consolidation theory, and empirical methods.

## Workflow Overview

1. **Model Setup**: Define geometry, soil layers, and material properties
2. **Load Definition**: Apply surface loads, foundation loads, or construction sequences
3. **Analysis Parameters**: Set calculation methods and convergence criteria
4. **Results Interpretation**: Review settlement contours, time-settlement curves, and factor of safety

## Key Analysis Options

**Immediate Settlement**: Calculated using elastic theory with appropriate modulus values from laboratory tests or field correlations.

**Consolidation Settlement**: Time-dependent analysis using Terzaghi's theory or more advanced approaches for layered systems.

**Secondary Compression**: Long-term settlement prediction using secondary compression indices.

## Integration Capabilities

Settle3 integrates with other Rocscience products and accepts data from various field investigation methods including CPT, SPT, and laboratory testing programs. The software supports both 2D and 3D visualization of results.`,
		},
		{
			ID:    "cpt_correlations",
			Title: "CPT Correlations for Geotechnical Parameters",
			Tags:  []string{"cpt", "correlations"},
			Body: `# CPT Correlations for Engineering Parameters

CPT provides direct measurements that can be correlated to various geotechnical engineering parameters essential for design.

## Strength Parameters

**Undrained Shear Strength (Su)**: For clays, Su = (qc - sigma_vo)/Nkt, where Nkt is the cone factor (typically 10-20).

**Friction Angle (phi')**: For sands, phi' can be estimated using Kulhawy & Mayne (1990): phi' = 17.6 + 11.0 x log(qc1N/pa)

## Stiffness Parameters

**Young's Modulus (E)**:
- Sands: E = alpha x qc (alpha = 2-4)
- Clays: E = beta x (qc - sigma_vo) (beta = 3-8)

**Shear Modulus (G)**: G = E/[2(1+nu)] where nu is Poisson's ratio

## Consolidation Parameters

**Coefficient of Consolidation (cv)**: Can be estimated from CPT dissipation tests using theoretical solutions.

**Preconsolidation Pressure (sigma'p)**: For clays, estimated using correlations with qt and effective stress.

## Soil Classification

**Soil Behavior Type (SBT)**: Robertson (2009) classification using the Ic parameter:
- Ic < 1.31: Gravelly sand
- 1.31 < Ic < 2.05: Sand
- 2.05 < Ic < 2.60: Sand mixtures
- 2.60 < Ic < 2.95: Clay mixtures
- Ic > 2.95: Clay

These correlations form the foundation for interpreting CPT data in geotechnical design and are implemented in Settle3's analysis routines.`,
		},
		{
			ID:    "bearing_capacity_fundamentals",
			Title: "Bearing Capacity Analysis Fundamentals",
			Tags:  []string{"bearing-capacity", "foundations"},
			Body: `# Bearing Capacity Analysis Fundamentals

Bearing capacity analysis determines the maximum load a foundation can support without experiencing excessive settlement or shear failure.

## Terzaghi Bearing Capacity Theory

The ultimate bearing capacity equation for shallow foundations on cohesionless soils:

**qu = gamma x Df x Nq + 0.5 x gamma x B x Ngamma**

Where:
- qu = Ultimate bearing capacity
- gamma = Unit weight of soil
- Df = Depth of foundation
- B = Width/diameter of foundation
- Nq, Ngamma = Bearing capacity factors (function of friction angle phi)

## Bearing Capacity Factors

The bearing capacity factors are theoretical values that depend on the soil's friction angle:

**For phi = 0**: Nq = 1.0, Ngamma = 0.0
**For phi = 30**: Nq ~ 18.4, Ngamma ~ 15.1
**For phi = 35**: Nq ~ 33.3, Ngamma ~ 33.9
**For phi = 40**: Nq ~ 64.2, Ngamma ~ 79.5

## Design Considerations

**Factor of Safety**: Typically 2.5-3.0 for ultimate bearing capacity
**Allowable Bearing Pressure**: qa = qu/FS
**Settlement Considerations**: Often governs design over bearing capacity failure

## Application in Practice

Modern foundation design considers both bearing capacity and settlement criteria. CPT data provides direct correlation to bearing capacity through qc values, while settlement analysis requires additional parameters like modulus relationships.`,
		},
		{
			ID:    "settlement_calculation_methods",
			Title: "Settlement Calculation Methods",
			Tags:  []string{"settlement", "methods"},
			Body: `# Settlement Calculation Methods

Settlement analysis is critical for foundation design and typically governs over bearing capacity for most practical applications.

## Types of Settlement

**Immediate Settlement (Si)**: Occurs during load application, calculated using elastic theory. For simple cases: Si = q x B x (1-nu^2) x If / E

**Primary Consolidation (Sc)**: Time-dependent settlement in saturated clays due to pore water expulsion. Calculated using: Sc = Cc x H x log(sigma'f/sigma'i)/(1+e0)

**Secondary Compression (Ss)**: Long-term settlement after primary consolidation. Calculated using: Ss = C-alpha x H x log(t2/t1)/(1+e0)

## Settlement Calculation Parameters

**Compression Index (Cc)**: Slope of virgin compression curve in e-log p' plot
**Recompression Index (Cr)**: Slope of unloading-reloading curve
**Secondary Compression Index (C-alpha)**: Rate of secondary compression

## Elastic Settlement Methods

**Influence Factor Method**: Uses influence factors (If) based on foundation geometry and soil layering
**Stress Distribution Method**: Calculates stress at depth and integrates settlement over profile
**Finite Element Method**: Advanced numerical approach for complex geometries

## CPT-Based Settlement Analysis

CPT provides continuous soil profiling for settlement calculations:
- Direct correlation to elastic modulus
- Soil classification for parameter selection
- Stress history assessment through qt measurements

Modern software like Settle3 integrates these methods with CPT data for comprehensive settlement analysis.`,
		},
	}
}
